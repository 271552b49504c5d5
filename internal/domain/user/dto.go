// internal/domain/user/dto.go
package user

// UserRequest creates or updates a user. Password is only required on create.
type UserRequest struct {
	Name        string   `json:"name" binding:"required,min=2"`
	Email       string   `json:"email" binding:"required,email"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Password    string   `json:"password,omitempty"`
	RoleID      string   `json:"roleId" binding:"required"`
	CompanyIDs  []string `json:"companyIds,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// ProfileRequest updates the signed-in user
type ProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// ChangePasswordRequest for the profile screen
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required,eqfield=NewPassword"`
}
