// internal/domain/ticket/entity.go
package ticket

import "msm-console/internal/domain/common"

type Ticket struct {
	common.BaseEntity
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	AssignedAgentID string `json:"assignedAgentID"`
	CustomerID      string `json:"customerID,omitempty"`
	TenantID        string `json:"tenantID,omitempty"`
}

// TicketRequest creates or updates a ticket
type TicketRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description" binding:"required"`
	Status          string `json:"status"`
	Priority        string `json:"priority"`
	AssignedAgentID string `json:"assignedAgentID"`
	CustomerID      string `json:"customerID,omitempty"`
	TenantID        string `json:"tenantID,omitempty"`
}
