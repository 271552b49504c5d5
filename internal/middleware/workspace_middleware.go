// internal/middleware/workspace_middleware.go
package middleware

import (
	"net/http"

	"msm-console/internal/pkg/response"
	"msm-console/internal/pkg/session"
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// WorkspaceCookie identifies the browser workspace.
	WorkspaceCookie = "console_ws"
	// LocationHeader carries the route the shell currently shows.
	LocationHeader = "X-Console-Location"

	workspaceCookieMaxAge = 60 * 60 * 24 * 30
)

type WorkspaceMiddleware struct {
	registry     *workspace.Registry
	cookieSecure bool
	logger       *zap.Logger
}

func NewWorkspaceMiddleware(registry *workspace.Registry, cookieSecure bool, logger *zap.Logger) *WorkspaceMiddleware {
	return &WorkspaceMiddleware{
		registry:     registry,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Resolve attaches the browser's workspace, issuing a new cookie when the
// browser has none or an unusable one.
func (m *WorkspaceMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(WorkspaceCookie)

		ws, err := m.registry.Resolve(c.Request.Context(), id)
		if err != nil {
			m.logger.Error("failed to resolve workspace", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "failed to load console state", err)
			return
		}

		if ws.ID != id {
			m.setCookie(c, ws.ID)
		}
		if loc := c.GetHeader(LocationHeader); loc != "" {
			ws.Nav.SetLocation(loc)
		}

		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// Rotate reissues the current workspace under a fresh id and points the
// browser cookie at it.
func (m *WorkspaceMiddleware) Rotate(c *gin.Context) (*workspace.Workspace, error) {
	ws, err := m.registry.Rotate(c.Request.Context(), MustGetWorkspace(c))
	if err != nil {
		return nil, err
	}
	m.setCookie(c, ws.ID)
	c.Set(workspaceKey, ws)
	return ws, nil
}

func (m *WorkspaceMiddleware) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(WorkspaceCookie, id, workspaceCookieMaxAge, "/", "", m.cookieSecure, true)
}

// RequireSession rejects screen routes while no token is stored.
func (m *WorkspaceMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := MustGetWorkspace(c)
		if ws.Session.Token(c.Request.Context()) == "" {
			response.Redirect(c, http.StatusUnauthorized, "authentication required", session.LoginPath)
			return
		}
		c.Next()
	}
}
