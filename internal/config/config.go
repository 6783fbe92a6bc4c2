package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "./config.yaml"
	defaultListenAddr     = ":3000"
	defaultMaxUploadBytes = 10 << 20
	defaultRatePerMinute  = 60
	defaultShutdown       = 15 * time.Second
)

type Config struct {
	ListenAddr      string         `yaml:"listen_addr" json:"listen_addr"`
	UploadAPIURL    string         `yaml:"upload_api_url" json:"upload_api_url"`
	ListAPIURL      string         `yaml:"list_api_url" json:"list_api_url"`
	Upload          UploadConfig   `yaml:"upload" json:"upload"`
	Upstream        UpstreamConfig `yaml:"upstream" json:"upstream"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

type UploadConfig struct {
	MaxBytes           int64 `yaml:"max_bytes" json:"max_bytes"`
	RequireImageType   bool  `yaml:"require_image_type" json:"require_image_type"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
}

type UpstreamConfig struct {
	// Timeout 0 — без таймаута.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Load читает .env, YAML-конфигурацию и применяет ENV-переопределения.
// path пустой — берём CONFIG_PATH или ./config.yaml; отсутствие файла по умолчанию не ошибка.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	explicit := path != "" || os.Getenv("CONFIG_PATH") != ""
	if path == "" {
		path = getenv("CONFIG_PATH", defaultConfigPath)
	}

	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err = c.applyEnv(); err != nil {
		return nil, err
	}

	if err = c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr: defaultListenAddr,
		Upload: UploadConfig{
			MaxBytes:           defaultMaxUploadBytes,
			RateLimitPerMinute: defaultRatePerMinute,
		},
		ShutdownTimeout: defaultShutdown,
	}
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_API_URL"); v != "" {
		c.UploadAPIURL = v
	}
	if v := os.Getenv("GET_API_URL"); v != "" {
		c.ListAPIURL = v
	}

	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_BYTES: %w", err)
		}
		c.Upload.MaxBytes = n
	}
	if v := os.Getenv("UPLOAD_REQUIRE_IMAGE_TYPE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_REQUIRE_IMAGE_TYPE: %w", err)
		}
		c.Upload.RequireImageType = b
	}
	if v := os.Getenv("UPLOAD_RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_RATE_LIMIT_PER_MINUTE: %w", err)
		}
		c.Upload.RateLimitPerMinute = n
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
		}
		c.Upstream.Timeout = d
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

// Validate проверяет, что оба адреса Storage API заданы и являются абсолютными URL.
func (c *Config) Validate() error {
	if err := requireURL("upload_api_url (UPLOAD_API_URL)", c.UploadAPIURL); err != nil {
		return err
	}
	if err := requireURL("list_api_url (GET_API_URL)", c.ListAPIURL); err != nil {
		return err
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0")
	}
	if c.Upload.RateLimitPerMinute < 0 {
		return fmt.Errorf("upload.rate_limit_per_minute must be >= 0")
	}

	return nil
}

func requireURL(name, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%s is not configured", name)
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}

	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
