package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("DOWNLOAD_URL_TTL", "")
	t.Setenv("DOWNLOAD_MODE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("REQUIRE_DESCRIPTION", "")
	cfg := Load()

	assert.Equal(t, "http://localhost:9090", cfg.PublicBaseURL)
	assert.Equal(t, 15*time.Minute, cfg.DownloadURLTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.False(t, cfg.RequireDescription)
	assert.False(t, cfg.StreamDownloads())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://books.example.com/")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DOWNLOAD_MODE", "STREAM")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("REQUIRE_DESCRIPTION", "notabool")
	cfg := Load()

	assert.Equal(t, "https://books.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "https://books.example.com/api/uploads", cfg.BlobBaseURL())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
	assert.True(t, cfg.StreamDownloads())
	assert.Equal(t, int64(1024), cfg.UploadMaxBytes)
	assert.False(t, cfg.RequireDescription)
}
