package role

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/querycache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type token string

func (t token) Token(context.Context) string { return string(t) }

func TestDeleteRoleInUseLeavesListUnchanged(t *testing.T) {
	var lists int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&lists, 1)
			w.Write([]byte(`{"isError":false,"data":{"items":[{"id":"r1","name":"Admin","isLocked":false}],"totalCount":1,"totalPages":1,"page":1,"pageSize":10}}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"statusCode":400,"isError":true,"message":"Role has users","data":null}`))
		}
	}))
	defer srv.Close()

	svc := NewRoleService(apiclient.New(srv.URL, token("abc"), zap.NewNop()), querycache.New(time.Hour), zap.NewNop())
	ctx := context.Background()
	q := paging.Query{Page: 1, PageSize: 10}

	before, err := svc.List(ctx, q)
	require.NoError(t, err)

	err = svc.Delete(ctx, "r1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRoleInUse))

	after, err := svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lists))
}

func TestDeleteRoleUnauthorizedKeepsKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewRoleService(apiclient.New(srv.URL, token("abc"), zap.NewNop()), querycache.New(time.Hour), zap.NewNop())
	err := svc.Delete(context.Background(), "r1")
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.False(t, errors.Is(err, ErrRoleInUse))
}

func TestDeleteRoleRejectedInsideOKEnvelope(t *testing.T) {
	var lists int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&lists, 1)
			w.Write([]byte(`{"isError":false,"data":{"items":[{"id":"r1","name":"Admin","isLocked":false}],"totalCount":1,"totalPages":1,"page":1,"pageSize":10}}`))
		case http.MethodDelete:
			w.Write([]byte(`{"statusCode":400,"isError":true,"message":"Role has users"}`))
		}
	}))
	defer srv.Close()

	svc := NewRoleService(apiclient.New(srv.URL, token("abc"), zap.NewNop()), querycache.New(time.Hour), zap.NewNop())
	ctx := context.Background()
	q := paging.Query{Page: 1, PageSize: 10}

	_, err := svc.List(ctx, q)
	require.NoError(t, err)

	err = svc.Delete(ctx, "r1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoleInUse)
	assert.Contains(t, err.Error(), "Role has users")

	_, err = svc.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lists))
}
