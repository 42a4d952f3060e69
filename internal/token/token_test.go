package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-blog-admin/internal/model"
)

const testSecret = "unit-test-secret-do-not-reuse"

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New("", time.Hour)
	require.Error(t, err)

	_, err = New(testSecret, 0)
	require.Error(t, err)
}

func TestIssueVerify_Roundtrip(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	signed, expiresAt, err := svc.Issue("user-1", model.RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	claims, ok := svc.Verify(signed)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleEditor, claims.Role)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestVerify_RejectsExpired(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	// Structurally valid, correctly signed, expired an hour ago.
	expired := mintRaw(t, testSecret, "user-1", "admin", time.Now().UTC().Add(-time.Hour))

	_, ok := svc.Verify(expired)
	assert.False(t, ok)
}

func TestVerify_RejectsTamperedSignature(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	other := mintRaw(t, "some-other-secret", "user-1", "admin", time.Now().UTC().Add(time.Hour))

	_, ok := svc.Verify(other)
	assert.False(t, ok)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c", "ey.ey.ey"} {
		_, ok := svc.Verify(raw)
		assert.False(t, ok, "input %q should not verify", raw)
	}
}

func TestVerify_RejectsUnsignedAlg(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, signedClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, ok := svc.Verify(raw)
	assert.False(t, ok)
}

func TestVerify_RejectsMissingSubjectOrRole(t *testing.T) {
	svc, err := New(testSecret, time.Hour)
	require.NoError(t, err)

	noSubject := mintRaw(t, testSecret, "", "admin", time.Now().UTC().Add(time.Hour))
	_, ok := svc.Verify(noSubject)
	assert.False(t, ok)

	badRole := mintRaw(t, testSecret, "user-1", "superuser", time.Now().UTC().Add(time.Hour))
	_, ok = svc.Verify(badRole)
	assert.False(t, ok)
}

func mintRaw(t *testing.T, secret string, subject string, role string, expiresAt time.Time) string {
	t.Helper()

	claims := signedClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}
