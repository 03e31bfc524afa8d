package admin_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rise-and-shine/iconreg/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, password string, ttl time.Duration) *admin.Service {
	t.Helper()

	file := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(file, []byte(password+"\n"), 0o600))

	svc, err := admin.New(admin.Config{PasswordFile: file, SessionTTL: ttl})
	require.NoError(t, err)

	return svc
}

func TestNew_MissingPasswordFile(t *testing.T) {
	t.Parallel()

	_, err := admin.New(admin.Config{
		PasswordFile: filepath.Join(t.TempDir(), "does-not-exist"),
		SessionTTL:   time.Hour,
	})
	require.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	svc := newService(t, "hunter2", time.Hour)

	tok, expiresAt, err := svc.VerifyPassword("hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.True(t, expiresAt.After(time.Now()))

	assert.True(t, svc.VerifyToken(tok))

	svc.Logout(tok)
	assert.False(t, svc.VerifyToken(tok))

	// logging out again is a no-op
	svc.Logout(tok)
}

func TestVerifyPassword_Wrong(t *testing.T) {
	t.Parallel()

	svc := newService(t, "hunter2", time.Hour)

	_, _, err := svc.VerifyPassword("letmein")
	require.Error(t, err)
}

func TestVerifyPassword_TrimsPasswordFile(t *testing.T) {
	t.Parallel()

	svc := newService(t, "  spaced  ", time.Hour)

	_, _, err := svc.VerifyPassword("spaced")
	require.NoError(t, err)
}

func TestVerifyToken_Expiry(t *testing.T) {
	t.Parallel()

	svc := newService(t, "hunter2", time.Hour)

	current := time.Now()
	admin.SetNowFunc(svc, func() time.Time { return current })

	tok, _, err := svc.VerifyPassword("hunter2")
	require.NoError(t, err)

	current = current.Add(time.Hour - time.Second)
	assert.True(t, svc.VerifyToken(tok))

	current = current.Add(2 * time.Second)
	assert.False(t, svc.VerifyToken(tok))
}

func TestVerifyToken_Unknown(t *testing.T) {
	t.Parallel()

	svc := newService(t, "hunter2", time.Hour)
	assert.False(t, svc.VerifyToken("never-issued"))
}
