// internal/service/role/role.go
package role

import (
	"context"
	"errors"
	"fmt"

	"msm-console/internal/domain/role"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/service/resource"

	"go.uber.org/zap"
)

const (
	Entity   = "roles"
	Endpoint = "/Role"
)

// ErrRoleInUse is the expected outcome of deleting a role that users still
// reference. The backend refuses it; the cached list stays as it was.
var ErrRoleInUse = errors.New("role is assigned to users")

type RoleService struct {
	*resource.Service[role.Role, role.RoleRequest]
	logger *zap.Logger
}

func NewRoleService(api resource.API, cache *querycache.Cache, logger *zap.Logger) *RoleService {
	return &RoleService{
		Service: resource.NewService[role.Role, role.RoleRequest](Entity, Endpoint, api, cache, logger),
		logger:  logger,
	}
}

// Delete reports any backend rejection as ErrRoleInUse. A 401 keeps its own
// meaning so the session teardown still applies.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	err := s.Service.Delete(ctx, id)
	if err == nil {
		return nil
	}

	var ae *apiclient.Error
	if errors.As(err, &ae) && ae.Kind == apiclient.KindApplication {
		s.logger.Info("role delete rejected", zap.String("role_id", id), zap.String("reason", ae.Message))
		return fmt.Errorf("%w: %s", ErrRoleInUse, ae.Message)
	}
	return err
}
