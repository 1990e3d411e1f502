package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/readnext/readnext/internal/shared/config"
)

// ErrInvalidToken covers every rejection: bad signature, wrong signing
// method, missing subject, or expiry in the past. Callers must answer it
// with 401, never retry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer creates and validates stateless HS256 bearer tokens carrying the
// username as subject. Tokens are verified by signature and expiry only;
// nothing is stored server-side, so they cannot be revoked before expiry.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a token for username with the configured TTL.
func (i *Issuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate checks signature and expiry and returns the subject username.
func (i *Issuer) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return i.secret, nil
		},
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
