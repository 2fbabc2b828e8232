package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-tests"

func newTestService() *Service {
	return NewService(testSecret, 15*time.Minute, 24*time.Hour)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccessToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ident.UserID)
	assert.True(t, ident.IsAdmin)
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueRefreshToken(7, false)
	require.NoError(t, err)

	ident, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), ident.UserID)
	assert.False(t, ident.IsAdmin)
}

func TestVerifyExpiredToken(t *testing.T) {
	// negative TTL produces a token whose exp is already in the past;
	// the signature is still valid
	svc := NewService(testSecret, -time.Minute, -time.Minute)

	token, err := svc.IssueAccessToken(1, false)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccessToken(1, false)
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewService("a-completely-different-secret", 15*time.Minute, 24*time.Hour)
	token, err := other.IssueAccessToken(1, true)
	require.NoError(t, err)

	_, err = newTestService().Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc := newTestService()

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

// signRaw builds a token with arbitrary claims using the test secret,
// bypassing the service, to reproduce malformed producers.
func signRaw(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestVerifyMissingIsAdmin(t *testing.T) {
	svc := newTestService()

	token := signRaw(t, gojwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrMalformedClaims)
}

func TestVerifyEmptyStringIsAdmin(t *testing.T) {
	svc := newTestService()

	// a historical producer emitted "" instead of a boolean; this must
	// be rejected, never treated as "not admin"
	token := signRaw(t, gojwt.MapClaims{
		"user_id":  1,
		"is_admin": "",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.Verify(token)
	assert.ErrorIs(t, err, ErrMalformedClaims)
}
