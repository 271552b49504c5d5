// internal/handlers/swagger/swagger_handler.go
package swagger

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SwaggerHandler struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewSwaggerHandler proxies the upstream OpenAPI document. insecureTLS
// accepts the self-signed certificate of a local backend.
func NewSwaggerHandler(url string, insecureTLS bool, logger *zap.Logger) *SwaggerHandler {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &SwaggerHandler{
		url: url,
		client: &http.Client{
			Transport: transport,
			Timeout:   15 * time.Second,
		},
		logger: logger,
	}
}

// Get republishes the upstream document verbatim.
func (h *SwaggerHandler) Get(c *gin.Context) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.url, nil)
	if err != nil {
		h.failed(c, err.Error())
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Error("swagger fetch failed", zap.String("url", h.url), zap.Error(err))
		h.failed(c, err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.failed(c, fmt.Sprintf("Failed to fetch swagger: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.failed(c, err.Error())
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, body)
}

func (h *SwaggerHandler) failed(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
}
