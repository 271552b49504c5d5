// internal/domain/masterdata/dto.go
package masterdata

type CompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
}

type MachineRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	BrandID     string `json:"brandId,omitempty"`
	CompanyID   string `json:"companyId" binding:"required"`
}

type BankAccountRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	CompanyID     string `json:"companyId" binding:"required"`
}

type BrandRequest struct {
	Name      string `json:"name" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
}

type CustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	CompanyID   string `json:"companyId" binding:"required"`
}
