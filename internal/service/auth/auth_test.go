package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"msm-console/internal/domain/auth"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/pkg/session"
	"msm-console/internal/repository"
	"msm-console/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type nav struct{ location string }

func (n *nav) Location() string     { return n.location }
func (n *nav) Navigate(path string) { n.location = path }

type fixture struct {
	svc   *AuthService
	store repository.LocalStore
	nav   *nav
	sess  *session.Manager
}

func newFixture(t *testing.T, h http.HandlerFunc) *fixture {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := memory.NewBackend().Scope("ws")
	n := &nav{location: "/login"}
	sess := session.NewManager(store, n, zap.NewNop())
	api := apiclient.New(srv.URL, sess, zap.NewNop(), apiclient.WithUnauthorizedHook(sess.Expire))

	return &fixture{
		svc:   NewAuthService(api, sess, querycache.New(time.Minute), zap.NewNop()),
		store: store,
		nav:   n,
		sess:  sess,
	}
}

func TestLoginPersistsTokensAndNavigatesHome(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Auth/Login", r.URL.Path)
		var req auth.AuthRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		w.Write([]byte(`{"statusCode":200,"isError":false,"message":"ok","data":{"jwtToken":"abc","refreshToken":"xyz"}}`))
	})
	ctx := context.Background()

	err := f.svc.Login(ctx, &auth.AuthRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	token, _, _ := f.store.Get(ctx, repository.KeyToken)
	refresh, _, _ := f.store.Get(ctx, repository.KeyRefreshToken)
	assert.Equal(t, "abc", token)
	assert.Equal(t, "xyz", refresh)
	assert.Equal(t, "/", f.nav.location)
	assert.Equal(t, session.StateAuthenticated, f.sess.State())
}

func TestLoginWithoutTokenFails(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isError":false,"data":{"jwtToken":""}}`))
	})

	err := f.svc.Login(context.Background(), &auth.AuthRequest{Email: "admin@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrNoTokenReceived)
	assert.Equal(t, "no token received", err.Error())
	assert.Equal(t, session.StateUnauthenticated, f.sess.State())
	assert.Equal(t, "/login", f.nav.location)
}

func TestLoginRejectedCredentialsStayOnLogin(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"isError":true,"message":"Invalid credentials","data":null}`))
	})

	err := f.svc.Login(context.Background(), &auth.AuthRequest{Email: "admin@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", apiclient.MessageOf(err, ""))
	assert.Equal(t, "/login", f.nav.location)
}

func TestLoginValidatesInput(t *testing.T) {
	called := false
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	err := f.svc.Login(context.Background(), &auth.AuthRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestRefreshTokenReplacesPair(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var req auth.RefreshTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "abc", req.AccessToken)
		assert.Equal(t, "xyz", req.RefreshToken)
		w.Write([]byte(`{"isError":false,"data":{"jwtToken":"def","refreshToken":"uvw"}}`))
	})
	ctx := context.Background()
	require.NoError(t, f.sess.CompleteLogin(ctx, "abc", "xyz"))

	require.NoError(t, f.svc.RefreshToken(ctx))
	assert.Equal(t, "def", f.sess.Token(ctx))
	assert.Equal(t, "uvw", f.sess.RefreshToken(ctx))
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()
	require.NoError(t, f.sess.CompleteLogin(ctx, "abc", "xyz"))

	require.NoError(t, f.svc.Logout(ctx))
	assert.Empty(t, f.sess.Token(ctx))
	assert.Equal(t, "/login", f.nav.location)
}
