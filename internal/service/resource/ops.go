// internal/service/resource/ops.go
package resource

import (
	"context"

	"msm-console/internal/pkg/apiclient"
)

// Binder decodes and validates a request body, e.g. gin's ShouldBindJSON.
type Binder func(obj interface{}) error

// Ops is the type-erased form of one entity's operations, used by the
// generic HTTP handler.
type Ops interface {
	Entity() string
	Get(ctx context.Context, id string) (interface{}, error)
	Create(ctx context.Context, bind Binder) (interface{}, error)
	Update(ctx context.Context, id string, bind Binder) (interface{}, error)
	Delete(ctx context.Context, id string) error
}

type boundOps[T any, Req any] struct {
	entity string
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, req *Req) (*T, error)
	update func(ctx context.Context, id string, req *Req) (*T, error)
	del    func(ctx context.Context, id string) error
}

// Bind erases the types of an entity's operations. Pass method values so
// that service overrides (a required password, role-in-use) apply.
func Bind[T any, Req any](
	entity string,
	get func(ctx context.Context, id string) (*T, error),
	create func(ctx context.Context, req *Req) (*T, error),
	update func(ctx context.Context, id string, req *Req) (*T, error),
	del func(ctx context.Context, id string) error,
) Ops {
	return &boundOps[T, Req]{entity: entity, get: get, create: create, update: update, del: del}
}

// BindService binds a plain Service.
func BindService[T any, Req any](s *Service[T, Req]) Ops {
	return Bind[T, Req](s.Entity(), s.GetByID, s.Create, s.Update, s.Delete)
}

func (o *boundOps[T, Req]) Entity() string { return o.entity }

func (o *boundOps[T, Req]) Get(ctx context.Context, id string) (interface{}, error) {
	return o.get(ctx, id)
}

func (o *boundOps[T, Req]) Create(ctx context.Context, bind Binder) (interface{}, error) {
	req, err := decode[Req](bind)
	if err != nil {
		return nil, err
	}
	return o.create(ctx, req)
}

func (o *boundOps[T, Req]) Update(ctx context.Context, id string, bind Binder) (interface{}, error) {
	req, err := decode[Req](bind)
	if err != nil {
		return nil, err
	}
	return o.update(ctx, id, req)
}

func (o *boundOps[T, Req]) Delete(ctx context.Context, id string) error {
	return o.del(ctx, id)
}

func decode[Req any](bind Binder) (*Req, error) {
	var req Req
	if err := bind(&req); err != nil {
		return nil, apiclient.NewValidationError(err.Error(), err)
	}
	return &req, nil
}
