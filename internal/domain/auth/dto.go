// internal/domain/auth/dto.go
package auth

// AuthRequest for console login
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a token pair for a new one
type RefreshTokenRequest struct {
	AccessToken  string `json:"accessToken" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdatePasswordRequest is the body of PUT /Auth/UpdatePassword
type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=6"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required,eqfield=NewPassword"`
}

// LoginResponse is what the console answers after a successful login
type LoginResponse struct {
	Redirect string `json:"redirect"`
}
