package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"go-blog-admin/pkg/apierror"
)

// placeholderSecret is the value shipped in .env.example. Starting with it is
// treated the same as starting with no secret at all.
const placeholderSecret = "change-me"

// DefaultBootstrapPassword seeds the first admin account when the operator
// supplies nothing. It is insecure until changed and the server says so at
// startup.
const DefaultBootstrapPassword = "admin123"

type Config struct {
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration

	TokenSecret string
	TokenTTL    time.Duration

	DataDir      string
	StoreTimeout time.Duration

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	CORSOrigins []string

	BootstrapUsername string
	BootstrapEmail    string
	BootstrapPassword string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		TokenSecret:        strings.TrimSpace(os.Getenv("AUTH_TOKEN_SECRET")),
		TokenTTL:           getDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		DataDir:            getEnv("DATA_DIR", "./data"),
		StoreTimeout:       getDuration("STORE_TIMEOUT", 5*time.Second),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:         int32(getInt("DB_MAX_CONNS", 8)),
		DBMinConns:         int32(getInt("DB_MIN_CONNS", 2)),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "*")),
		BootstrapUsername:  getEnv("ADMIN_BOOTSTRAP_USERNAME", "admin"),
		BootstrapEmail:     getEnv("ADMIN_BOOTSTRAP_EMAIL", "admin@localhost"),
		BootstrapPassword:  getEnv("ADMIN_BOOTSTRAP_PASSWORD", DefaultBootstrapPassword),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return apierror.New("CONFIG_ERROR", "AUTH_TOKEN_SECRET is required", "", http.StatusInternalServerError)
	}

	if c.TokenSecret == placeholderSecret {
		return apierror.New("CONFIG_ERROR", "AUTH_TOKEN_SECRET still has its placeholder value", "", http.StatusInternalServerError)
	}

	if c.ServerPort == "" {
		return apierror.New("CONFIG_ERROR", "SERVER_PORT cannot be empty", "", http.StatusInternalServerError)
	}

	if c.TokenTTL <= 0 {
		return apierror.New("CONFIG_ERROR", "AUTH_TOKEN_TTL must be positive", "", http.StatusInternalServerError)
	}

	if c.StoreTimeout <= 0 {
		return apierror.New("CONFIG_ERROR", "STORE_TIMEOUT must be positive", "", http.StatusInternalServerError)
	}

	if c.DatabaseURL == "" && strings.TrimSpace(c.DataDir) == "" {
		return apierror.New("CONFIG_ERROR", "DATA_DIR cannot be empty without DATABASE_URL", "", http.StatusInternalServerError)
	}

	return nil
}

// UsesDefaultBootstrapPassword reports whether the seed admin would be created
// with the well-known default password.
func (c *Config) UsesDefaultBootstrapPassword() bool {
	return c.BootstrapPassword == DefaultBootstrapPassword
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
