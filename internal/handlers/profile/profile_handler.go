// internal/handlers/profile/profile_handler.go
package profile

import (
	"net/http"

	"msm-console/internal/domain/user"
	"msm-console/internal/handlers"
	"msm-console/internal/middleware"
	"msm-console/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	logger *zap.Logger
}

func NewProfileHandler(logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{logger: logger}
}

// Get returns the signed-in user.
func (h *ProfileHandler) Get(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	u, err := ws.Users.Profile(c.Request.Context())
	if err != nil {
		h.logger.Warn("failed to load profile", zap.String("workspace_id", ws.ID), zap.Error(err))
		handlers.Fail(c, ws, "Failed to load profile", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "profile retrieved", u)
}

// Update saves the signed-in user's own record.
func (h *ProfileHandler) Update(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	var req user.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	u, err := ws.Users.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		handlers.Fail(c, ws, "Failed to update profile", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "Profile updated successfully", u)
}

// ChangePassword updates the signed-in user's password.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := ws.Users.ChangePassword(c.Request.Context(), &req); err != nil {
		handlers.Fail(c, ws, "Failed to change password", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "Password changed successfully", nil)
}
