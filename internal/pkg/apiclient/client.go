// internal/pkg/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource yields the bearer token of the calling workspace.
type TokenSource interface {
	Token(ctx context.Context) string
}

// envelope is the uniform backend response wrapper.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	IsError    bool            `json:"isError"`
	Data       json.RawMessage `json:"data"`
}

// Client calls the backend API on behalf of one workspace.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	limiter        *rate.Limiter
	onUnauthorized func(ctx context.Context)
	logger         *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter throttles outbound calls. A nil limiter disables throttling.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithUnauthorizedHook runs fn whenever the backend answers 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, tokens TokenSource, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one call. A successful envelope is unwrapped so out receives
// only its data; isError and non-2xx answers come back as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	endpoint := endpointRoot(path)
	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		upstreamRequestsTotal.WithLabelValues(method, endpoint, outcomeOf(err)).Inc()
	}()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			return &Error{Kind: KindTransport, Err: werr}
		}
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Error("401 unauthorized from upstream, clearing session",
			zap.String("method", method),
			zap.String("path", path),
		)
		if c.onUnauthorized != nil {
			c.onUnauthorized(context.WithoutCancel(ctx))
		}
		env, _ := decodeEnvelope(raw)
		return &Error{
			Kind:       KindUnauthorized,
			StatusCode: resp.StatusCode,
			Message:    messageOr(env, ""),
			Body:       raw,
			Err:        sentinelFor(resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		env, _ := decodeEnvelope(raw)
		return &Error{
			Kind:       KindApplication,
			StatusCode: resp.StatusCode,
			Message:    messageOr(env, statusText(resp)),
			Body:       raw,
			Err:        sentinelFor(resp.StatusCode),
		}
	}

	payload := raw
	env, hasData := decodeEnvelope(raw)
	if env.IsError {
		return &Error{
			Kind:       KindApplication,
			StatusCode: env.StatusCode,
			Message:    messageOr(env, "Request failed"),
			Body:       raw,
			Err:        sentinelFor(env.StatusCode),
		}
	}
	if hasData {
		payload = env.Data
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Body: raw, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		c.logger.Warn("upstream request missing token", zap.String("method", method), zap.String("path", path))
	}
	return req, nil
}

// decodeEnvelope reads the envelope fields of any JSON object body. hasData
// reports whether the object carries a "data" key to unwrap.
func decodeEnvelope(raw []byte) (env envelope, hasData bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return envelope{}, false
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, false
	}
	_, hasData = fields["data"]
	return env, hasData
}

func messageOr(env envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}

func statusText(resp *http.Response) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var ae *Error
	if errors.As(err, &ae) {
		return string(ae.Kind)
	}
	return "error"
}
