// internal/domain/masterdata/entity.go
package masterdata

import "msm-console/internal/domain/common"

// ========== Company ==========

type Company struct {
	common.BaseEntity
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ========== Machine ==========

type Machine struct {
	common.BaseEntity
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	BrandID     string `json:"brandId,omitempty"`
	BrandName   string `json:"brandName,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
}

// ========== Bank account ==========

type BankAccount struct {
	common.BaseEntity
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	CompanyID     string `json:"companyId,omitempty"`
}

// ========== Brand ==========

type Brand struct {
	common.BaseEntity
	Name      string `json:"name"`
	CompanyID string `json:"companyId,omitempty"`
}

// ========== Customer ==========

type Customer struct {
	common.BaseEntity
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
}
