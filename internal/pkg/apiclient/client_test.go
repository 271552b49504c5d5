package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	xerrors "msm-console/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

type role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticToken(token), zap.NewNop(), opts...)
}

func TestDoUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/Role/7", r.URL.Path)
		w.Write([]byte(`{"statusCode":200,"message":"ok","isError":false,"data":{"id":"7","name":"Admin"}}`))
	}, "abc")

	var out role
	require.NoError(t, c.Get(context.Background(), "/Role/7", nil, &out))
	assert.Equal(t, role{ID: "7", Name: "Admin"}, out)
}

func TestDoPassesThroughBareBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"1","name":"Bare"}`))
	}, "abc")

	var out role
	require.NoError(t, c.Get(context.Background(), "/Role/1", nil, &out))
	assert.Equal(t, "Bare", out.Name)
}

func TestDoSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("Page"))
		assert.Equal(t, "-createdAt", r.URL.Query().Get("Sorts"))
		w.Write([]byte(`{"isError":false,"data":null}`))
	}, "abc")

	q := url.Values{"Page": {"2"}, "Sorts": {"-createdAt"}}
	assert.NoError(t, c.Get(context.Background(), "/Role", q, nil))
}

func TestDoRejectsIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statusCode":409,"message":"Role is assigned to users","isError":true,"data":null}`))
	}, "abc")

	var out role
	err := c.Delete(context.Background(), "/Role/7", &out)
	require.Error(t, err)

	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindApplication, ae.Kind)
	assert.Equal(t, "Role is assigned to users", ae.Message)
	assert.Contains(t, string(ae.Body), `"isError":true`)
	assert.True(t, errors.Is(err, xerrors.ErrConflict))
	assert.Equal(t, "Role is assigned to users", MessageOf(err, "fallback"))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestDoRejectsIsErrorWithoutData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statusCode":400,"isError":true,"message":"Role name already exists"}`))
	}, "abc")

	var out map[string]interface{}
	err := c.Get(context.Background(), "/Role", nil, &out)
	require.Error(t, err)
	assert.Nil(t, out)

	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindApplication, ae.Kind)
	assert.Equal(t, "Role name already exists", ae.Message)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestDoNon2xxUsesStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	}, "abc")

	err := c.Get(context.Background(), "/Machine", nil, nil)
	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindApplication, ae.Kind)
	assert.Equal(t, "500 Internal Server Error", ae.Message)
}

func TestDo401RunsHookOnce(t *testing.T) {
	var hooks int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "abc", WithUnauthorizedHook(func(context.Context) { atomic.AddInt32(&hooks, 1) }))

	err := c.Get(context.Background(), "/User/1", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.True(t, errors.Is(err, xerrors.ErrSessionExpired))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hooks))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}

func TestDoWithoutTokenOmitsHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"jwtToken":"abc"}}`))
	}, "")

	var out map[string]string
	require.NoError(t, c.Post(context.Background(), "/Auth/Login", map[string]string{"email": "a@b.c"}, &out))
	assert.Equal(t, "abc", out["jwtToken"])
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c := New(srv.URL, staticToken("abc"), zap.NewNop())

	err := c.Get(context.Background(), "/Role", nil, nil)
	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindTransport, ae.Kind)
	assert.Equal(t, "Something went wrong", MessageOf(err, "Something went wrong"))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))
}

func TestEndpointRoot(t *testing.T) {
	assert.Equal(t, "/Role", endpointRoot("/Role/12"))
	assert.Equal(t, "/Auth", endpointRoot("Auth/Login"))
	assert.Equal(t, "/User", endpointRoot("/User"))
}
