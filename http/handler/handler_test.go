package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/iconreg/admin"
	"github.com/rise-and-shine/iconreg/http/server"
	"github.com/rise-and-shine/iconreg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects map[string][]byte
}

func (s *memStore) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.objects[key] = data
	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errx.New("Object not found", errx.WithType(errx.T_NotFound))
	}
	return data, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *memStore) {
	t.Helper()

	passwordFile := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("hunter2"), 0o600))

	sessions, err := admin.New(admin.Config{PasswordFile: passwordFile, SessionTTL: time.Hour})
	require.NoError(t, err)

	log, err := logger.New(logger.Config{Disable: true})
	require.NoError(t, err)

	store := &memStore{objects: map[string][]byte{}}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			_ = server.WriteErrorResponse(c, err, false)
			return nil
		},
	})
	h := New(nil, sessions, store, log)
	h.Register(app)

	return app, store
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"password": "hunter2"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var parsed struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.NotEmpty(t, parsed.Token)

	_, err = time.Parse(time.RFC3339, parsed.ExpiresAt)
	require.NoError(t, err)

	return parsed.Token
}

func TestHealth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminSessionFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	token := login(t, app)

	verify := httptest.NewRequest(fiber.MethodGet, "/api/admin/verify", nil)
	verify.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(verify)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	logout := httptest.NewRequest(fiber.MethodPost, "/api/admin/logout", nil)
	logout.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err = app.Test(logout)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(verify)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	req := httptest.NewRequest(fiber.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminVerify_MissingToken(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/admin/verify", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStoredObject(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)

	pngBytes := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	store.objects["assets/abc/icon-32.png"] = pngBytes

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/storage/assets/abc/icon-32.png", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, cacheControl, resp.Header.Get(fiber.HeaderCacheControl))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestStoredObject_SniffWithoutExtension(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)

	store.objects["derived/abc/original"] = []byte{0xFF, 0xD8, 0xFF, 0xE0}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/storage/derived/abc/original", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))
}
