// internal/domain/role/entity.go
package role

import "msm-console/internal/domain/common"

// Role groups permissions. Locked roles are managed by the backend.
type Role struct {
	common.BaseEntity
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsLocked    bool   `json:"isLocked"`
}

// RoleRequest creates or updates a role
type RoleRequest struct {
	Name        string `json:"name" binding:"required,max=32"`
	Description string `json:"description,omitempty" binding:"max=256"`
}
