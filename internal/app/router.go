// internal/app/router.go
package app

import (
	"net/http"

	authHandler "msm-console/internal/handlers/auth"
	companyHandler "msm-console/internal/handlers/company"
	dashboardHandler "msm-console/internal/handlers/dashboard"
	profileHandler "msm-console/internal/handlers/profile"
	resourceHandler "msm-console/internal/handlers/resource"
	shellHandler "msm-console/internal/handlers/shell"
	swaggerHandler "msm-console/internal/handlers/swagger"
	wsHandler "msm-console/internal/handlers/websocket"
	"msm-console/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	ProfileHandler      *profileHandler.ProfileHandler
	CompanyHandler      *companyHandler.CompanyHandler
	DashboardHandler    *dashboardHandler.DashboardHandler
	ResourceHandler     *resourceHandler.ResourceHandler
	ShellHandler        *shellHandler.ShellHandler
	SwaggerHandler      *swaggerHandler.SwaggerHandler
	WSHandler           *wsHandler.WebSocketHandler
	WorkspaceMiddleware *middleware.WorkspaceMiddleware
	Metrics             http.Handler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Operations ====================
	r.GET("/metrics", gin.WrapH(h.Metrics))

	api := r.Group("/api")
	api.GET("/health", h.ShellHandler.Health)
	api.GET("/swagger", h.SwaggerHandler.Get)

	// Everything below belongs to a browser workspace.
	console := api.Group("")
	console.Use(h.WorkspaceMiddleware.Resolve())

	// ==================== WebSocket ====================
	r.GET("/ws", h.WorkspaceMiddleware.Resolve(), h.WSHandler.HandleConnection)

	// ==================== Session ====================
	console.GET("/bootstrap", h.ShellHandler.Bootstrap)

	authRoutes := console.Group("/auth")
	{
		authRoutes.POST("/login", h.AuthHandler.Login)
		authRoutes.POST("/logout", h.AuthHandler.Logout)
		authRoutes.POST("/refresh", h.AuthHandler.Refresh)
	}

	// ==================== Screens ====================
	screens := console.Group("")
	screens.Use(h.WorkspaceMiddleware.RequireSession())
	{
		screens.GET("/ws/stats", h.WSHandler.GetStats)

		screens.GET("/profile", h.ProfileHandler.Get)
		screens.PUT("/profile", h.ProfileHandler.Update)
		screens.PUT("/profile/password", h.ProfileHandler.ChangePassword)

		screens.GET("/company-scope", h.CompanyHandler.Get)
		screens.PUT("/company-scope", h.CompanyHandler.Select)
		screens.GET("/company-scope/options", h.CompanyHandler.Options)

		screens.GET("/dashboard", h.DashboardHandler.Summary)
	}

	// ==================== Entities ====================
	entities := screens.Group("/:entity")
	{
		entities.GET("", h.ResourceHandler.View)
		entities.PUT("/view", h.ResourceHandler.UpdateView)
		entities.POST("", h.ResourceHandler.Create)
		entities.GET("/:id", h.ResourceHandler.Get)
		entities.PUT("/:id", h.ResourceHandler.Update)
		entities.DELETE("/:id", h.ResourceHandler.Delete)
	}
}
