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
	"github.com/rs/zerolog"

	"github.com/vuquang23/go-ffxiv/launcher"
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendFile   CacheBackend = "file"
	CacheBackendRedis  CacheBackend = "redis"
)

type Config struct {
	AcceptLanguage string
	ClientLanguage launcher.ClientLanguage
	GamePath       string
	License        launcher.License
	IsFreeTrial    bool
	UseCache       bool
	CacheBackend   CacheBackend
	CachePath      string
	RedisAddr      string
	HTTPTimeout    time.Duration
	Proxy          string
	LogLevel       zerolog.Level
	VerifyWorkers  int
	OTPSecret      string
}

// Settings is the subset the launcher client needs.
func (c Config) Settings() launcher.Settings {
	return launcher.Settings{
		AcceptLanguage: c.AcceptLanguage,
		ClientLanguage: c.ClientLanguage,
		Timeout:        c.HTTPTimeout,
	}
}

type Env interface {
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Getenv(key string) string { return os.Getenv(key) }

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadConfigFromEnv(osEnv{})
}

func LoadConfigFromEnv(env Env) (Config, error) {
	cfg := Config{
		AcceptLanguage: "en-US,en;q=0.9",
		ClientLanguage: launcher.ClientLanguageEnglish,
		CacheBackend:   CacheBackendMemory,
		CachePath:      "uidCache.json",
		RedisAddr:      "localhost:6379",
		HTTPTimeout:    30 * time.Second,
		LogLevel:       zerolog.InfoLevel,
		VerifyWorkers:  4,
	}

	if raw := env.Getenv("XL_ACCEPT_LANGUAGE"); raw != "" {
		cfg.AcceptLanguage = raw
	}

	lang, err := launcher.ParseClientLanguage(strings.ToLower(env.Getenv("XL_CLIENT_LANGUAGE")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid XL_CLIENT_LANGUAGE: %w", err)
	}
	cfg.ClientLanguage = lang

	cfg.GamePath = env.Getenv("XL_GAME_PATH")

	license, err := launcher.ParseLicense(strings.ToLower(env.Getenv("XL_LICENSE")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid XL_LICENSE: %w", err)
	}
	cfg.License = license

	if cfg.IsFreeTrial, err = parseBool(env, "XL_FREE_TRIAL"); err != nil {
		return Config{}, err
	}
	if cfg.UseCache, err = parseBool(env, "XL_UID_CACHE"); err != nil {
		return Config{}, err
	}

	if raw := env.Getenv("XL_UID_CACHE_BACKEND"); raw != "" {
		switch b := CacheBackend(strings.ToLower(raw)); b {
		case CacheBackendMemory, CacheBackendFile, CacheBackendRedis:
			cfg.CacheBackend = b
		default:
			return Config{}, fmt.Errorf("invalid XL_UID_CACHE_BACKEND %q", raw)
		}
	}
	if raw := env.Getenv("XL_UID_CACHE_PATH"); raw != "" {
		cfg.CachePath = raw
	}
	if raw := env.Getenv("XL_REDIS_ADDR"); raw != "" {
		cfg.RedisAddr = raw
	}

	if raw := env.Getenv("XL_HTTP_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("invalid XL_HTTP_TIMEOUT_SECONDS")
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	cfg.Proxy = env.Getenv("XL_PROXY")

	if raw := env.Getenv("XL_LOG_LEVEL"); raw != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid XL_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if raw := env.Getenv("XL_VERIFY_WORKERS"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil || workers <= 0 {
			return Config{}, fmt.Errorf("invalid XL_VERIFY_WORKERS")
		}
		cfg.VerifyWorkers = workers
	}

	cfg.OTPSecret = env.Getenv("XL_OTP_SECRET")

	return cfg, nil
}

func parseBool(env Env, key string) (bool, error) {
	raw := env.Getenv(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
