package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

const testSecret = "test-secret"

func TestJWTService_IssueVerify(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(domain.Claims{UserID: "1", Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc, err := NewJWTService(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)

	_, err = NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	svc, err := NewJWTService(testSecret, time.Minute)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(domain.Claims{UserID: "1", Username: "john", Role: domain.RoleUser})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, _ := NewJWTService("other-secret", time.Hour)
	verifier, _ := NewJWTService(testSecret, time.Hour)

	token, err := issuer.Issue(domain.Claims{UserID: "1", Username: "john", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	svc, _ := NewJWTService(testSecret, time.Hour)

	claims := jwt.MapClaims{"id": "1", "username": "john", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_Garbage(t *testing.T) {
	svc, _ := NewJWTService(testSecret, time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, tok)
	}
}
