// internal/middleware/helpers.go
package middleware

import (
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
)

const workspaceKey = "workspace"

// GetWorkspace gets the request's workspace from context
func GetWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	v, exists := c.Get(workspaceKey)
	if !exists {
		return nil, false
	}
	ws, ok := v.(*workspace.Workspace)
	return ws, ok
}

// MustGetWorkspace gets the workspace from context or panics
func MustGetWorkspace(c *gin.Context) *workspace.Workspace {
	ws, ok := GetWorkspace(c)
	if !ok {
		panic("workspace not found in context")
	}
	return ws
}

func workspaceIDOf(c *gin.Context) string {
	if ws, ok := GetWorkspace(c); ok {
		return ws.ID
	}
	return ""
}
