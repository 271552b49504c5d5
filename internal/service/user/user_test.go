package user

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"msm-console/internal/domain/user"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/repository"
	"msm-console/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSubject string

func (s fixedSubject) SubjectID(context.Context) (string, error) { return string(s), nil }

type token string

func (t token) Token(context.Context) string { return string(t) }

func newService(t *testing.T, h http.HandlerFunc) (*UserService, repository.LocalStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := memory.NewBackend().Scope("ws")
	api := apiclient.New(srv.URL, token("abc"), zap.NewNop())
	return NewUserService(api, fixedSubject("42"), store, querycache.New(time.Hour), zap.NewNop()), store
}

func TestProfileRetriesOnce(t *testing.T) {
	var calls int32
	svc, store := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/User/42", r.URL.Path)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"isError":false,"data":{"id":"42","name":"Admin","email":"admin@example.com"}}`))
	})

	u, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	raw, ok, _ := store.Get(context.Background(), repository.KeyUser)
	assert.True(t, ok)
	assert.Contains(t, raw, `"name":"Admin"`)

	_, err = svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "profile is cached")
}

func TestProfileDoesNotRetryUnauthorized(t *testing.T) {
	var calls int32
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.Profile(context.Background())
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCreateRequiresPassword(t *testing.T) {
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := svc.Create(context.Background(), &user.UserRequest{Name: "Budi", Email: "budi@example.com", RoleID: "r1"})
	assert.True(t, errors.Is(err, ErrPasswordRequired))
	assert.Equal(t, ErrPasswordRequired.Error(), apiclient.MessageOf(err, ""))
}

func TestChangePasswordChecksConfirmation(t *testing.T) {
	var calls int32
	svc, _ := newService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/Auth/UpdatePassword", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"isError":false,"data":null}`))
	})
	ctx := context.Background()

	err := svc.ChangePassword(ctx, &user.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "secret1", ConfirmNewPassword: "secret2"})
	require.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&calls))

	err = svc.ChangePassword(ctx, &user.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "secret1", ConfirmNewPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
