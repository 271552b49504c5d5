// internal/domain/billing/entity.go
package billing

import "msm-console/internal/domain/common"

// Agreement is a rental agreement between a company and a customer
type Agreement struct {
	common.BaseEntity
	Number     string  `json:"number"`
	CustomerID string  `json:"customerId,omitempty"`
	MachineID  string  `json:"machineId,omitempty"`
	CompanyID  string  `json:"companyId,omitempty"`
	StartDate  string  `json:"startDate,omitempty"`
	EndDate    string  `json:"endDate,omitempty"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status,omitempty"`
}

type Invoice struct {
	common.BaseEntity
	Number      string  `json:"number"`
	AgreementID string  `json:"agreementId,omitempty"`
	CompanyID   string  `json:"companyId,omitempty"`
	IssueDate   string  `json:"issueDate,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`
	Total       float64 `json:"total"`
	Status      string  `json:"status,omitempty"`
}
