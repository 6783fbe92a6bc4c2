package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_PATH", "LISTEN_ADDR", "UPLOAD_API_URL", "GET_API_URL",
		"UPLOAD_MAX_BYTES", "UPLOAD_REQUIRE_IMAGE_TYPE", "UPLOAD_RATE_LIMIT_PER_MINUTE",
		"UPSTREAM_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	// godotenv читает .env из рабочей директории
	t.Chdir(t.TempDir())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
listen_addr: ":9000"
upload_api_url: "https://api.example.com/upload"
list_api_url: "https://api.example.com/images"
upload:
  max_bytes: 2048
  require_image_type: true
upstream:
  timeout: 5s
`)
	t.Setenv("GET_API_URL", "https://other.example.com/list")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "https://api.example.com/upload", cfg.UploadAPIURL)
	assert.Equal(t, "https://other.example.com/list", cfg.ListAPIURL)
	assert.EqualValues(t, 2048, cfg.Upload.MaxBytes)
	assert.True(t, cfg.Upload.RequireImageType)
	assert.Equal(t, defaultRatePerMinute, cfg.Upload.RateLimitPerMinute)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, defaultShutdown, cfg.ShutdownTimeout)
}

func TestLoad_EnvOnlyWhenDefaultFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPLOAD_API_URL", "https://api.example.com/upload")
	t.Setenv("GET_API_URL", "https://api.example.com/images")
	t.Setenv("UPLOAD_RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.EqualValues(t, defaultMaxUploadBytes, cfg.Upload.MaxBytes)
	assert.Zero(t, cfg.Upload.RateLimitPerMinute)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv не перезаписывает уже существующие переменные, даже пустые
	require.NoError(t, os.Unsetenv("UPLOAD_API_URL"))
	require.NoError(t, os.Unsetenv("GET_API_URL"))
	require.NoError(t, os.WriteFile(".env", []byte("UPLOAD_API_URL=https://dotenv.example.com/up\nGET_API_URL=https://dotenv.example.com/ls\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.com/up", cfg.UploadAPIURL)
	assert.Equal(t, "https://dotenv.example.com/ls", cfg.ListAPIURL)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, `upload_api_url: "https://api.example.com/upload"`))
	require.ErrorContains(t, err, "list_api_url")

	_, err = Load(writeConfig(t, `
upload_api_url: "/relative"
list_api_url: "https://api.example.com/images"
`))
	require.ErrorContains(t, err, "absolute URL")

	t.Setenv("UPLOAD_MAX_BYTES", "ten")
	_, err = Load(writeConfig(t, `
upload_api_url: "https://api.example.com/upload"
list_api_url: "https://api.example.com/images"
`))
	require.ErrorContains(t, err, "UPLOAD_MAX_BYTES")
}
