// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"msm-console/internal/config"
	"msm-console/internal/db"
	authHandler "msm-console/internal/handlers/auth"
	companyHandler "msm-console/internal/handlers/company"
	dashboardHandler "msm-console/internal/handlers/dashboard"
	profileHandler "msm-console/internal/handlers/profile"
	resourceHandler "msm-console/internal/handlers/resource"
	shellHandler "msm-console/internal/handlers/shell"
	swaggerHandler "msm-console/internal/handlers/swagger"
	wsHandler "msm-console/internal/handlers/websocket"
	"msm-console/internal/middleware"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/session"
	"msm-console/internal/repository"
	"msm-console/internal/repository/memory"
	"msm-console/internal/repository/postgres"
	"msm-console/internal/repository/rediskv"
	"msm-console/internal/websocket"
	wsHandlers "msm-console/internal/websocket/handler"
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	storeTTL   = 30 * 24 * time.Hour
	sweepEvery = time.Minute
)

type Server struct {
	cfg      config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	http     *http.Server
	backend  repository.Backend
	registry *workspace.Registry
	cancel   context.CancelFunc
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New(), logger: logger}
}

// Setup wires storage, the push channel, workspaces and routes.
func (s *Server) Setup(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	logger := s.logger

	// ----- Local storage -----
	backend, limiter, err := s.openStore(ctx)
	if err != nil {
		return err
	}
	s.backend = backend

	// ----- Metrics -----
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	apiclient.RegisterMetrics(reg)
	middleware.RegisterMetrics(reg)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)

	// ----- Workspaces -----
	var upstreamLimiter *rate.Limiter
	if s.cfg.UpstreamRPS > 0 {
		upstreamLimiter = rate.NewLimiter(rate.Limit(s.cfg.UpstreamRPS), int(s.cfg.UpstreamRPS)+1)
	}

	s.registry = workspace.NewRegistry(workspace.Deps{
		Backend:    backend,
		Config:     s.cfg,
		HTTPClient: &http.Client{Timeout: s.cfg.UpstreamTimeout},
		Limiter:    upstreamLimiter,
		Notifier:   hub,
		Logger:     logger,
	})
	s.registry.OnEvict(func(id string) {
		hub.DisconnectWorkspace(id, "workspace expired")
	})

	hub.RegisterHandler(wsHandlers.NewListHandler(s.registry))
	go hub.Run(ctx)
	go s.registry.Run(ctx, sweepEvery)

	// ----- Handlers -----
	workspaceMiddleware := middleware.NewWorkspaceMiddleware(s.registry, s.cfg.CookieSecure, logger)
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(limiter, workspaceMiddleware, logger),
		ProfileHandler:      profileHandler.NewProfileHandler(logger),
		CompanyHandler:      companyHandler.NewCompanyHandler(logger),
		DashboardHandler:    dashboardHandler.NewDashboardHandler(),
		ResourceHandler:     resourceHandler.NewResourceHandler(logger),
		ShellHandler:        shellHandler.NewShellHandler(s.registry, logger),
		SwaggerHandler:      swaggerHandler.NewSwaggerHandler(s.cfg.SwaggerURL, s.cfg.SwaggerInsecureTLS, logger),
		WSHandler:           wsHandler.NewWebSocketHandler(hub, nil, logger),
		WorkspaceMiddleware: workspaceMiddleware,
		Metrics:             promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Handler exposes the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until Shutdown.
func (s *Server) Run() error {
	s.logger.Info("console running",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("api_url", s.cfg.APIBaseURL),
		zap.String("store", s.cfg.StoreDriver),
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openStore selects the workspace storage driver. The login limiter is only
// available with redis.
func (s *Server) openStore(ctx context.Context) (repository.Backend, *session.LoginLimiter, error) {
	switch s.cfg.StoreDriver {
	case "memory", "":
		return memory.NewBackend(), nil, nil

	case "redis":
		client, err := db.NewRedisClient(db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))
		return rediskv.NewBackend(client, storeTTL), session.NewLoginLimiter(client), nil

	case "postgres":
		pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		repo := postgres.NewKVRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to prepare workspace table: %w", err)
		}
		s.logger.Info("connected to PostgreSQL")
		return repo, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", s.cfg.StoreDriver)
}

// Shutdown stops accepting requests, then releases the hub, the workspaces
// and the store.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.backend != nil {
		if cerr := s.backend.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
