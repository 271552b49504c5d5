// internal/handlers/shell/shell_handler.go
package shell

import (
	"net/http"
	"time"

	"msm-console/internal/handlers"
	"msm-console/internal/middleware"
	"msm-console/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stats reports process-wide counters.
type Stats interface {
	Len() int
}

type BootstrapResponse struct {
	State     string `json:"state"`
	CompanyID string `json:"companyId"`
	Location  string `json:"location"`
}

type ShellHandler struct {
	workspaces Stats
	logger     *zap.Logger
}

func NewShellHandler(workspaces Stats, logger *zap.Logger) *ShellHandler {
	return &ShellHandler{
		workspaces: workspaces,
		logger:     logger,
	}
}

// Bootstrap restores the session on app load. Without a token the shell is
// sent to the login route.
func (h *ShellHandler) Bootstrap(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	state, err := ws.Init(c.Request.Context())
	if err != nil {
		h.logger.Error("bootstrap failed", zap.String("workspace_id", ws.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to restore session", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "session restored", BootstrapResponse{
		State:     string(state),
		CompanyID: ws.Company.Selected(),
		Location:  ws.Nav.Location(),
	})
}

func (h *ShellHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", gin.H{
		"workspaces": h.workspaces.Len(),
		"time":       time.Now().UTC(),
	})
}
