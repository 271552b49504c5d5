package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"API_URL", "SEARCH_DEBOUNCE", "PAGE_SIZE", "STORE_DRIVER", "UPSTREAM_RPS", "SWAGGER_INSECURE_TLS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Zero(t, cfg.UpstreamRPS)
	assert.False(t, cfg.SwaggerInsecureTLS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_URL", "https://api.example.com")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("UPSTREAM_RPS", "2.5")
	t.Setenv("SWAGGER_INSECURE_TLS", "TRUE")

	cfg := Load()
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 2.5, cfg.UpstreamRPS)
	assert.True(t, cfg.SwaggerInsecureTLS)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "-3")
	t.Setenv("SEARCH_DEBOUNCE", "soon")

	cfg := Load()
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)
}
