// internal/domain/billing/dto.go
package billing

type AgreementRequest struct {
	Number     string  `json:"number" binding:"required"`
	CustomerID string  `json:"customerId" binding:"required"`
	MachineID  string  `json:"machineId,omitempty"`
	CompanyID  string  `json:"companyId" binding:"required"`
	StartDate  string  `json:"startDate" binding:"required"`
	EndDate    string  `json:"endDate,omitempty"`
	Amount     float64 `json:"amount" binding:"gte=0"`
	Status     string  `json:"status,omitempty"`
}

type InvoiceRequest struct {
	Number      string  `json:"number" binding:"required"`
	AgreementID string  `json:"agreementId" binding:"required"`
	CompanyID   string  `json:"companyId" binding:"required"`
	IssueDate   string  `json:"issueDate" binding:"required"`
	DueDate     string  `json:"dueDate,omitempty"`
	Total       float64 `json:"total" binding:"gte=0"`
	Status      string  `json:"status,omitempty"`
}
