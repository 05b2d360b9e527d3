package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DoneBackendFile     = "file"
	DoneBackendPostgres = "postgres"
)

// Config stores runtime configuration. Values come from the YAML file named
// by MCQ_CONFIG, if any, and environment variables override them.
type Config struct {
	AppEnv             string
	HTTPAddr           string
	DataDir            string
	StaticDir          string
	CacheDir           string
	DoneBackend        string
	DBDSN              string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifeMins  int
	CSRFEnforced       bool
	APIRateLimitPerMin int
}

type fileConfig struct {
	AppEnv             string `yaml:"app_env"`
	HTTPAddr           string `yaml:"http_addr"`
	DataDir            string `yaml:"data_dir"`
	StaticDir          string `yaml:"static_dir"`
	CacheDir           string `yaml:"cache_dir"`
	DoneBackend        string `yaml:"done_backend"`
	DBDSN              string `yaml:"db_dsn"`
	DBMaxOpenConns     int    `yaml:"db_max_open_conns"`
	DBMaxIdleConns     int    `yaml:"db_max_idle_conns"`
	DBConnMaxLifeMins  int    `yaml:"db_conn_max_lifetime_minutes"`
	CSRFEnforced       *bool  `yaml:"csrf_enforced"`
	APIRateLimitPerMin int    `yaml:"api_rate_limit_per_minute"`
}

func LoadConfig() (Config, error) {
	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("MCQ_CONFIG")); path != "" {
		loaded, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		fc = loaded
	}

	dataDir := envOrDefault("DATA_DIR", stringOr(fc.DataDir, "data"))
	csrf := false
	if fc.CSRFEnforced != nil {
		csrf = *fc.CSRFEnforced
	}

	cfg := Config{
		AppEnv:             envOrDefault("APP_ENV", stringOr(fc.AppEnv, "development")),
		HTTPAddr:           envOrDefault("HTTP_ADDR", stringOr(fc.HTTPAddr, ":5000")),
		DataDir:            dataDir,
		StaticDir:          envOrDefault("STATIC_DIR", stringOr(fc.StaticDir, "web")),
		CacheDir:           envOrDefault("CACHE_DIR", stringOr(fc.CacheDir, filepath.Join(dataDir, ".cache"))),
		DoneBackend:        strings.ToLower(envOrDefault("DONE_BACKEND", stringOr(fc.DoneBackend, DoneBackendFile))),
		DBDSN:              envOrDefault("DB_DSN", fc.DBDSN),
		DBMaxOpenConns:     intOrDefault("DB_MAX_OPEN_CONNS", intOr(fc.DBMaxOpenConns, 25)),
		DBMaxIdleConns:     intOrDefault("DB_MAX_IDLE_CONNS", intOr(fc.DBMaxIdleConns, 25)),
		DBConnMaxLifeMins:  intOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", intOr(fc.DBConnMaxLifeMins, 30)),
		CSRFEnforced:       boolOrDefault("CSRF_ENFORCED", csrf),
		APIRateLimitPerMin: intOrDefault("API_RATE_LIMIT_PER_MINUTE", intOr(fc.APIRateLimitPerMin, 600)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DoneBackend {
	case DoneBackendFile:
	case DoneBackendPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("config: DB_DSN is required when DONE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("config: unknown done backend %q", c.DoneBackend)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data dir is required")
	}
	return nil
}

func readConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func stringsToInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func intOrDefault(key string, fallback int) int {
	v := stringsToInt(os.Getenv(key))
	if v <= 0 {
		return fallback
	}
	return v
}

func boolOrDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
