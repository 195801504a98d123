package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DanNess-system/Jardin-Infinito/internal/auth"
	"github.com/DanNess-system/Jardin-Infinito/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminHandler(t *testing.T) (*AdminHandler, *auth.Service) {
	t.Helper()

	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	db.DB.SetMaxOpenConns(1)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.DB.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.NewService(db, log)
	require.NoError(t, authService.EnsureDefaultAdmin("admin@jardininfinito.com", "admin123"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.html"), []byte("<h1>Iniciar Sesión</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin.html"), []byte("<h1>Panel de {{.User.Name}}</h1>"), 0o644))

	templates := NewTemplateCache()
	require.NoError(t, templates.Load(dir))

	return &AdminHandler{
		Auth:      &AuthHandler{Auth: authService},
		Templates: templates,
	}, authService
}

func TestLoginPage(t *testing.T) {
	handler, _ := newAdminHandler(t)

	rec := httptest.NewRecorder()
	handler.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Iniciar Sesión"))
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	handler, authService := newAdminHandler(t)

	user, err := authService.Authenticate("admin@jardininfinito.com", "admin123")
	require.NoError(t, err)
	token, err := authService.CreateSession(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.LoginPage(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestPanelRequiresSession(t *testing.T) {
	handler, _ := newAdminHandler(t)

	rec := httptest.NewRecorder()
	handler.Panel(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestPanelRendersForSession(t *testing.T) {
	handler, authService := newAdminHandler(t)

	user, err := authService.Authenticate("admin@jardininfinito.com", "admin123")
	require.NoError(t, err)
	token, err := authService.CreateSession(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.Panel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Administrador"))
}
