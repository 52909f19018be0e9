package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is applied when callers pass a zero ttl to IssueToken.
const DefaultTokenTTL = 24 * time.Hour

// Verification failures. Callers must reject the request for all three; the
// distinction exists only for logging.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the decoded identity asserted by a verified token.
// TenantID is absent for platform-level actors.
type Claims struct {
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	Role     string     `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the claim subject parsed as a user id.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// IssueToken encodes {sub, tenant_id, role, exp} into an HS256-signed token.
func IssueToken(userID uuid.UUID, tenantID *uuid.UUID, role, secret string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	claims := &Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken decodes and validates tokenStr, returning the embedded claims.
// Failures are classified as expired, bad signature, or malformed.
func VerifyToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
