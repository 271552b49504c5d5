// internal/service/user/user.go
package user

import (
	"context"
	"encoding/json"
	"errors"

	"msm-console/internal/domain/user"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/repository"
	"msm-console/internal/service/resource"

	"go.uber.org/zap"
)

const (
	Entity        = "users"
	Endpoint      = "/User"
	ProfileEntity = "profile"
)

var ErrPasswordRequired = errors.New("password is required for new users")

// Subject resolves the signed-in user id from the stored token.
type Subject interface {
	SubjectID(ctx context.Context) (string, error)
}

type UserService struct {
	*resource.Service[user.User, user.UserRequest]
	api     resource.API
	subject Subject
	store   repository.LocalStore
	cache   *querycache.Cache
	logger  *zap.Logger
}

func NewUserService(api resource.API, subject Subject, store repository.LocalStore, cache *querycache.Cache, logger *zap.Logger) *UserService {
	return &UserService{
		Service: resource.NewService[user.User, user.UserRequest](Entity, Endpoint, api, cache, logger),
		api:     api,
		subject: subject,
		store:   store,
		cache:   cache,
		logger:  logger,
	}
}

// Create requires a password, which updates may leave out.
func (s *UserService) Create(ctx context.Context, req *user.UserRequest) (*user.User, error) {
	if req.Password == "" {
		return nil, apiclient.NewValidationError(ErrPasswordRequired.Error(), ErrPasswordRequired)
	}
	return s.Service.Create(ctx, req)
}

// ========== Profile ==========

// Profile loads the signed-in user. A failure other than 401 is retried once.
func (s *UserService) Profile(ctx context.Context) (*user.User, error) {
	id, err := s.subject.SubjectID(ctx)
	if err != nil {
		return nil, err
	}

	key := querycache.Key{Entity: ProfileEntity, Params: id}
	return querycache.Get(ctx, s.cache, key, func(ctx context.Context) (*user.User, error) {
		u, err := s.GetByID(ctx, id)
		if err != nil && !apiclient.IsUnauthorized(err) {
			s.logger.Warn("profile fetch failed, retrying", zap.String("user_id", id), zap.Error(err))
			u, err = s.GetByID(ctx, id)
		}
		if err != nil {
			return nil, err
		}
		s.remember(ctx, u)
		return u, nil
	})
}

// UpdateProfile saves the signed-in user's own record.
func (s *UserService) UpdateProfile(ctx context.Context, req *user.ProfileRequest) (*user.User, error) {
	if err := resource.Validate(req); err != nil {
		return nil, err
	}

	id, err := s.subject.SubjectID(ctx)
	if err != nil {
		return nil, err
	}

	var out user.User
	if err := s.api.Put(ctx, Endpoint+"/"+id, req, &out); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ProfileEntity)
	s.cache.Invalidate(Entity)
	return &out, nil
}

// ChangePassword goes through the auth endpoint with the profile form body.
func (s *UserService) ChangePassword(ctx context.Context, req *user.ChangePasswordRequest) error {
	if err := resource.Validate(req); err != nil {
		return err
	}
	return s.api.Put(ctx, "/Auth/UpdatePassword", req, nil)
}

// remember keeps the profile in workspace storage; session teardown clears it.
func (s *UserService) remember(ctx context.Context, u *user.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, repository.KeyUser, string(raw)); err != nil {
		s.logger.Warn("failed to store profile", zap.Error(err))
	}
}
