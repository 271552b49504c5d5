// internal/pkg/jwt/claims.go
package jwt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names that may carry the user id, in lookup order. The last one is
// what ASP.NET identity emits for ClaimTypes.NameIdentifier.
var subjectClaims = []string{
	"id",
	"sub",
	"UserId",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
}

var ErrNoSubject = errors.New("user id not found in token")

// Decode parses the token payload WITHOUT verifying the signature. The result
// is only a display hint; authorization stays with the backend.
func Decode(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// SubjectID returns the user id carried by the token.
func SubjectID(token string) (string, error) {
	claims, err := Decode(token)
	if err != nil {
		return "", err
	}

	for _, name := range subjectClaims {
		if id := claimString(claims[name]); id != "" {
			return id, nil
		}
	}
	return "", ErrNoSubject
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
