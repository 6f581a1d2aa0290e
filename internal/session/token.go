package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// tokenExpiry inspects a stored credential for an expiry hint. The console
// treats tokens as opaque, but when one happens to be JWT-shaped its exp
// claim tells us a verify round trip is doomed before we make it. The
// signature is deliberately not checked; this is a hint, never a grant.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
