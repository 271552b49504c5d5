// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"msm-console/internal/domain/auth"
	xerrors "msm-console/internal/pkg/errors"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/pkg/session"
	"msm-console/internal/service/resource"

	"go.uber.org/zap"
)

const endpoint = "/Auth"

var ErrNoTokenReceived = errors.New("no token received")

type AuthService struct {
	api     resource.API
	session *session.Manager
	cache   *querycache.Cache
	logger  *zap.Logger
}

func NewAuthService(api resource.API, sessionManager *session.Manager, cache *querycache.Cache, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:     api,
		session: sessionManager,
		cache:   cache,
		logger:  logger,
	}
}

// ========== Login ==========

// Login exchanges credentials for a token pair and hands it to the session,
// which persists it and navigates to the dashboard root.
func (s *AuthService) Login(ctx context.Context, req *auth.AuthRequest) error {
	if err := resource.Validate(req); err != nil {
		return err
	}

	s.session.BeginLogin()

	var data auth.AuthData
	if err := s.api.Post(ctx, endpoint+"/Login", req, &data); err != nil {
		s.session.FailLogin()
		return err
	}

	if data.JWTToken == "" {
		s.session.FailLogin()
		return ErrNoTokenReceived
	}

	if err := s.session.CompleteLogin(ctx, data.JWTToken, data.RefreshToken); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	s.logger.Info("login successful", zap.String("email", req.Email))
	return nil
}

// ========== Logout ==========

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

// ========== Tokens ==========

// RefreshToken trades the stored pair for a new one. It only runs when the
// shell asks for it; nothing refreshes in the background.
func (s *AuthService) RefreshToken(ctx context.Context) error {
	req := auth.RefreshTokenRequest{
		AccessToken:  s.session.Token(ctx),
		RefreshToken: s.session.RefreshToken(ctx),
	}
	if req.AccessToken == "" || req.RefreshToken == "" {
		return xerrors.ErrNoToken
	}

	var data auth.AuthData
	if err := s.api.Post(ctx, endpoint+"/RefreshToken", &req, &data); err != nil {
		return err
	}
	if data.JWTToken == "" {
		return ErrNoTokenReceived
	}

	return s.session.ReplaceTokens(ctx, data.JWTToken, data.RefreshToken)
}

// UpdatePassword changes the password of the signed-in user.
func (s *AuthService) UpdatePassword(ctx context.Context, req *auth.UpdatePasswordRequest) error {
	if err := resource.Validate(req); err != nil {
		return err
	}
	return s.api.Put(ctx, endpoint+"/UpdatePassword", req, nil)
}
