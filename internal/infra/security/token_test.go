package security

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	v := TokenVerifier{Secret: []byte("test-secret")}

	raw, err := v.Sign(Claims{UserID: "user-1", OrganizationID: "org-1", Role: "owner"})
	require.NoError(t, err)

	claims, err := v.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, "owner", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := TokenVerifier{Secret: []byte("first")}.Sign(Claims{UserID: "user-1"})
	require.NoError(t, err)

	_, err = TokenVerifier{Secret: []byte("second")}.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = TokenVerifier{Secret: []byte("test-secret")}.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresSubject(t *testing.T) {
	v := TokenVerifier{Secret: []byte("test-secret")}
	raw, err := v.Sign(Claims{OrganizationID: "org-1"})
	require.NoError(t, err)

	_, err = v.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	var v TokenVerifier
	_, err := v.Sign(Claims{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrNoSecret)
	_, err = v.Verify("whatever")
	assert.ErrorIs(t, err, ErrNoSecret)
}
