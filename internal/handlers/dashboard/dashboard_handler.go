// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"msm-console/internal/handlers"
	"msm-console/internal/middleware"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Summary returns the tile counts. Individual tiles carry their own errors.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)
	summary := ws.Dashboard.Summary(c.Request.Context())
	handlers.OK(c, ws, http.StatusOK, "dashboard summary", summary)
}
