package utils // package utils provides helper functions for token creation and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed JWT admin token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is sent in the Authorization header
// when calling the protected admin endpoints.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the administrator. It
// takes the signing secret, the admin username, and a TTL in minutes. The
// JWT includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat). The role claim is always "ADMIN"; there is no other
// principal in the system.
func NewAdminToken(secret, username string, ttlMin int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
