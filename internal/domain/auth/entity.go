// internal/domain/auth/entity.go
package auth

// AuthData is the token pair issued by /Auth/Login and /Auth/RefreshToken.
type AuthData struct {
	JWTToken     string `json:"jwtToken"`
	RefreshToken string `json:"refreshToken"`
}
