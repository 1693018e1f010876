// Package token inspects bearer credentials on the client side.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain/service"
)

// jwtInspector reads the expiry claim out of a JWT without verifying the
// signature. The client never validates tokens, it only needs the expiry to
// arm its auto-logout timer; rejection is the backend's responsibility.
type jwtInspector struct {
	parser *jwt.Parser
}

// NewInspector is the constructor for the JWT inspector.
func NewInspector() service.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

// Expiry returns the remaining lifetime of the token at now. ok is false for
// malformed tokens and tokens without an exp claim.
func (i *jwtInspector) Expiry(tokenString string, now time.Time) (time.Duration, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return 0, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}

	return exp.Time.Sub(now), true
}
