package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"aura/models"
)

// The client never verifies token signatures; that is the backend's job. The
// claims are decoded unverified purely to read expiry and the role hint.

func parseUnverified(raw string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// tokenExpiry returns the exp claim of an access token.
func tokenExpiry(raw string) (time.Time, bool) {
	claims, ok := parseUnverified(raw)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenRole returns the role claim, when the backend embeds one.
func tokenRole(raw string) (models.Role, bool) {
	claims, ok := parseUnverified(raw)
	if !ok {
		return "", false
	}
	v, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return models.ParseRole(v)
}
