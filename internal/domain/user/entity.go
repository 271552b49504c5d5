// internal/domain/user/entity.go
package user

import "msm-console/internal/domain/common"

// User is a console account as returned by /User
type User struct {
	common.BaseEntity
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	RoleID      string   `json:"roleId,omitempty"`
	RoleCode    string   `json:"roleCode,omitempty"`
	RoleName    string   `json:"roleName,omitempty"`
	CompanyIDs  []string `json:"companyIds,omitempty"`
}
