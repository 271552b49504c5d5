// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"
	"strconv"

	"msm-console/internal/domain/auth"
	"msm-console/internal/handlers"
	"msm-console/internal/middleware"
	xerrors "msm-console/internal/pkg/errors"
	"msm-console/internal/pkg/response"
	"msm-console/internal/pkg/session"
	authUsecase "msm-console/internal/service/auth"
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkspaceRotator reissues the browser workspace under a fresh id.
type WorkspaceRotator interface {
	Rotate(c *gin.Context) (*workspace.Workspace, error)
}

type AuthHandler struct {
	limiter *session.LoginLimiter
	rotator WorkspaceRotator
	logger  *zap.Logger
}

// NewAuthHandler builds the handler. limiter may be nil when no redis store
// is configured.
func NewAuthHandler(limiter *session.LoginLimiter, rotator WorkspaceRotator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		limiter: limiter,
		rotator: rotator,
		logger:  logger,
	}
}

// ========== Login ==========

// Login exchanges credentials for a session and sends the shell home.
func (h *AuthHandler) Login(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	var req auth.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	if h.limiter != nil {
		allowed, remaining, err := h.limiter.CheckLoginAttempt(ctx, ip, req.Email)
		if err != nil {
			h.logger.Warn("login rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later", nil)
			return
		} else {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}
	}

	if h.rotator != nil {
		next, err := h.rotator.Rotate(c)
		if err != nil {
			h.logger.Error("failed to rotate workspace", zap.String("workspace_id", ws.ID), zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "failed to start session", err)
			return
		}
		ws = next
	}

	if err := ws.Auth.Login(ctx, &req); err != nil {
		h.logger.Warn("login failed",
			zap.String("workspace_id", ws.ID),
			zap.String("email", req.Email),
			zap.String("ip", ip),
			zap.Error(err),
		)
		if errors.Is(err, authUsecase.ErrNoTokenReceived) {
			response.Error(c, http.StatusBadGateway, "Login failed: No token received", err)
			return
		}
		handlers.Fail(c, ws, "Login failed", err)
		return
	}

	if h.limiter != nil {
		if err := h.limiter.ResetLoginAttempts(ctx, ip, req.Email); err != nil {
			h.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	redirect := ws.Nav.TakeRedirect()
	if redirect == "" {
		redirect = session.HomePath
	}
	response.SuccessRedirect(c, http.StatusOK, "login successful", redirect, auth.LoginResponse{Redirect: redirect})
}

// ========== Logout ==========

func (h *AuthHandler) Logout(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	if err := ws.Auth.Logout(c.Request.Context()); err != nil {
		h.logger.Error("logout failed", zap.String("workspace_id", ws.ID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "logout failed", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "logout successful", nil)
}

// ========== Tokens ==========

// Refresh trades the stored token pair for a new one on explicit request.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ws := middleware.MustGetWorkspace(c)

	if err := ws.Auth.RefreshToken(c.Request.Context()); err != nil {
		if errors.Is(err, xerrors.ErrNoToken) {
			response.Redirect(c, http.StatusUnauthorized, "no session to refresh", session.LoginPath)
			return
		}
		h.logger.Warn("token refresh failed", zap.String("workspace_id", ws.ID), zap.Error(err))
		handlers.Fail(c, ws, "token refresh failed", err)
		return
	}

	handlers.OK(c, ws, http.StatusOK, "token refreshed", nil)
}
