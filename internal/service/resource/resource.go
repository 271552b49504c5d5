// internal/service/resource/resource.go
package resource

import (
	"context"
	"fmt"
	"net/url"

	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/querycache"

	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// API is the subset of apiclient.Client the services call.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

// Service is the list/get/create/update/delete contract every backend entity
// follows. T is the record, Req the create/update body.
type Service[T any, Req any] struct {
	entity   string
	endpoint string
	api      API
	cache    *querycache.Cache
	logger   *zap.Logger
}

// NewService binds an entity to its endpoint root, e.g. ("roles", "/Role").
// entity names the cached queries that mutations invalidate.
func NewService[T any, Req any](entity, endpoint string, api API, cache *querycache.Cache, logger *zap.Logger) *Service[T, Req] {
	return &Service[T, Req]{
		entity:   entity,
		endpoint: endpoint,
		api:      api,
		cache:    cache,
		logger:   logger.With(zap.String("entity", entity)),
	}
}

func (s *Service[T, Req]) Entity() string   { return s.entity }
func (s *Service[T, Req]) Endpoint() string { return s.endpoint }

// ========== Reads ==========

// GetAll fetches one page straight from the backend.
func (s *Service[T, Req]) GetAll(ctx context.Context, q paging.Query) (paging.Result[T], error) {
	var res paging.Result[T]
	if err := s.api.Get(ctx, s.endpoint, q.Values(), &res); err != nil {
		return paging.Result[T]{}, err
	}

	res.Normalize(q)
	if err := res.Check(); err != nil {
		s.logger.Warn("backend page breaks list contract", zap.Error(err))
	}
	return res, nil
}

// List is GetAll through the query cache.
func (s *Service[T, Req]) List(ctx context.Context, q paging.Query) (paging.Result[T], error) {
	key := querycache.Key{Entity: s.entity, Params: q.Key()}
	return querycache.Get(ctx, s.cache, key, func(ctx context.Context) (paging.Result[T], error) {
		return s.GetAll(ctx, q)
	})
}

// Peek returns the last cached page for q.
func (s *Service[T, Req]) Peek(q paging.Query) (paging.Result[T], bool) {
	return querycache.PeekAs[paging.Result[T]](s.cache, querycache.Key{Entity: s.entity, Params: q.Key()})
}

// Count asks for a single row and reads the total.
func (s *Service[T, Req]) Count(ctx context.Context, filters string) (int, error) {
	q := paging.Query{Page: 1, PageSize: 1, Filters: filters}
	res, err := s.List(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.TotalCount, nil
}

func (s *Service[T, Req]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := s.api.Get(ctx, s.path(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ========== Mutations ==========

func (s *Service[T, Req]) Create(ctx context.Context, req *Req) (*T, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out T
	if err := s.api.Post(ctx, s.endpoint, req, &out); err != nil {
		s.logger.Warn("create failed", zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(s.entity)
	return &out, nil
}

func (s *Service[T, Req]) Update(ctx context.Context, id string, req *Req) (*T, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var out T
	if err := s.api.Put(ctx, s.path(id), req, &out); err != nil {
		s.logger.Warn("update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(s.entity)
	return &out, nil
}

func (s *Service[T, Req]) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, s.path(id), nil); err != nil {
		s.logger.Warn("delete failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(s.entity)
	return nil
}

// Invalidate forces the next read of this entity to refetch.
func (s *Service[T, Req]) Invalidate() {
	s.cache.Invalidate(s.entity)
}

func (s *Service[T, Req]) path(id string) string {
	return fmt.Sprintf("%s/%s", s.endpoint, url.PathEscape(id))
}

// Validate checks the binding tags of a request before it leaves the console.
func Validate(req interface{}) error {
	if binding.Validator == nil {
		return nil
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return apiclient.NewValidationError(err.Error(), err)
	}
	return nil
}
