package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("security: invalid token")
	ErrNoSecret     = errors.New("security: signing secret not configured")
)

// Claims is the identity carried by a bearer token. Organization members
// have OrganizationID set; regular users do not.
type Claims struct {
	UserID         string
	OrganizationID string
	Role           string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	OrganizationID string `json:"org_id,omitempty"`
	Role           string `json:"role,omitempty"`
}

// TokenVerifier validates HS256 bearer tokens issued by the identity service.
type TokenVerifier struct {
	Secret []byte
}

func (v TokenVerifier) Verify(raw string) (Claims, error) {
	if len(v.Secret) == 0 {
		return Claims{}, ErrNoSecret
	}
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("security: unexpected signing method %q", t.Method.Alg())
		}
		return v.Secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		UserID:         claims.Subject,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
	}, nil
}

// Sign issues a token for the given claims; used by tests and dev tooling.
func (v TokenVerifier) Sign(claims Claims) (string, error) {
	if len(v.Secret) == 0 {
		return "", ErrNoSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: claims.UserID},
		OrganizationID:   claims.OrganizationID,
		Role:             claims.Role,
	})
	return token.SignedString(v.Secret)
}
