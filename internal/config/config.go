package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures where the two catalog services live and how lector talks
// to them.
type Config struct {
	BooksURL          string
	AuthorsURL        string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	RefreshEvery      time.Duration // zero disables background refresh
	LogFile           string
}

const (
	defaultConfigPath        = "~/.config/lector/config.toml"
	defaultBooksURL          = "https://apilibros-7h0j.onrender.com/api/libromaterial"
	defaultAuthorsURL        = "https://apiautor.onrender.com/api/autor"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 5
	defaultLogFile           = "~/.local/state/lector/lector.log"

	envBooksURL   = "LECTOR_BOOKS_URL"
	envAuthorsURL = "LECTOR_AUTHORS_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BooksURL:          defaultBooksURL,
		AuthorsURL:        defaultAuthorsURL,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		LogFile:           mustExpand(defaultLogFile),
	}
}

// Load reads the lector config, falling back to defaults when the file is
// missing. Endpoint environment variables win over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BooksURL          string  `toml:"books_url"`
		AuthorsURL        string  `toml:"authors_url"`
		RequestTimeout    string  `toml:"request_timeout"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		RefreshEvery      string  `toml:"refresh_every"`
		LogFile           string  `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BooksURL); v != "" {
		cfg.BooksURL = v
	}
	if v := strings.TrimSpace(raw.AuthorsURL); v != "" {
		cfg.AuthorsURL = v
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RefreshEvery, err = parseDuration("refresh_every", raw.RefreshEvery, 0); err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadDotenv loads KEY=value pairs from the given files (".env" when none
// are given) into the process environment. Missing files are ignored;
// variables already set are not overwritten.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBooksURL)); v != "" {
		cfg.BooksURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAuthorsURL)); v != "" {
		cfg.AuthorsURL = v
	}
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: %q is negative", key, value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
