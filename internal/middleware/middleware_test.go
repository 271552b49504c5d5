package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"msm-console/internal/config"
	"msm-console/internal/repository"
	"msm-console/internal/repository/memory"
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, backend repository.Backend) (*gin.Engine, *workspace.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	cfg.WorkspaceIdleTTL = time.Hour
	registry := workspace.NewRegistry(workspace.Deps{Backend: backend, Config: cfg, Logger: zap.NewNop()})
	wm := NewWorkspaceMiddleware(registry, false, zap.NewNop())

	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()), wm.Resolve())
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, MustGetWorkspace(c).Nav.Location())
	})
	r.GET("/guarded", wm.RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r, registry
}

func TestResolveIssuesCookie(t *testing.T) {
	r, registry := newTestRouter(t, memory.NewBackend())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, WorkspaceCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, workspace.ValidID(cookies[0].Value))
	assert.Equal(t, 1, registry.Len())

	// The known cookie is reused without being reissued.
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(cookies[0])
	req.Header.Set(LocationHeader, "/roles")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, "/roles", w.Body.String())
	assert.Equal(t, 1, registry.Len())
}

func TestResolveReplacesUnknownWellFormedCookie(t *testing.T) {
	r, _ := newTestRouter(t, memory.NewBackend())
	chosen := workspace.NewID()

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookie, Value: chosen})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, chosen, cookies[0].Value)
	assert.True(t, workspace.ValidID(cookies[0].Value))
}

func TestRequireSessionRedirectsToLogin(t *testing.T) {
	r, _ := newTestRouter(t, memory.NewBackend())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, false, body["success"])
}

func TestRequireSessionPassesWithToken(t *testing.T) {
	backend := memory.NewBackend()
	id := workspace.NewID()
	require.NoError(t, backend.Scope(id).Set(context.Background(), repository.KeyToken, "tok"))
	r, _ := newTestRouter(t, backend)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: WorkspaceCookie, Value: id})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	r, _ := newTestRouter(t, memory.NewBackend())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
