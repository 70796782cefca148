package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"museo/internal/services"
)

// TokenInfo holds claims read from an access token. The signature is not
// verified; only the backend can do that.
type TokenInfo struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// InspectToken decodes JWT claims without verifying the signature.
func InspectToken(token string) (TokenInfo, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenInfo{}, services.Wrap(services.ErrValidation, component, "inspect", "token is empty", nil)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, services.Wrap(services.ErrValidation, component, "inspect", "token is not a JWT", err)
	}

	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info, nil
}
