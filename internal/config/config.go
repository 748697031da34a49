package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	JWTSecret       string
	TokenExpiry     time.Duration
	StoreDomain     string
	AccessToken     string
	APIVersion      string
	UsersFile       string
	PublicDir       string
	UpstreamTimeout time.Duration
	LogLevel        string
}

// Load подхватывает .env из рабочей директории (если есть) и читает окружение
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", "3000"),
		JWTSecret:   getenv("JWT_SECRET"),
		StoreDomain: get("STORE_DOMAIN", ""),
		AccessToken: get("ACCESS_TOKEN", ""),
		APIVersion:  get("API_VERSION", "2024-10"),
		UsersFile:   get("USERS_FILE", "./users.json"),
		PublicDir:   get("PUBLIC_DIR", "./public"),
		LogLevel:    get("LOG_LEVEL", "info"),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	var err error
	if cfg.TokenExpiry, err = ParseTTL(get("TOKEN_EXPIRY", "24h")); err != nil {
		return nil, fmt.Errorf("TOKEN_EXPIRY: %w", err)
	}
	if cfg.UpstreamTimeout, err = time.ParseDuration(get("UPSTREAM_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}
	return cfg, nil
}

// ParseTTL понимает длительности Go ("90m", "24h"), суффикс дней ("7d")
// и целое число секунд ("3600").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("non-positive duration %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", s)
	}
	return d, nil
}
