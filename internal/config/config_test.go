package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envBooksURL, "")
	t.Setenv(envAuthorsURL, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BooksURL != defaultBooksURL {
		t.Fatalf("BooksURL = %q, want %q", cfg.BooksURL, defaultBooksURL)
	}
	if cfg.AuthorsURL != defaultAuthorsURL {
		t.Fatalf("AuthorsURL = %q, want %q", cfg.AuthorsURL, defaultAuthorsURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if cfg.RequestsPerSecond != defaultRequestsPerSecond {
		t.Fatalf("RequestsPerSecond = %v, want %v", cfg.RequestsPerSecond, defaultRequestsPerSecond)
	}
	if cfg.RefreshEvery != 0 {
		t.Fatalf("RefreshEvery = %v, want 0", cfg.RefreshEvery)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
books_url = "  http://localhost:5000/api/libromaterial  "
authors_url = "http://localhost:5001/api/autor"
request_timeout = "3s"
requests_per_second = 2.5
refresh_every = " 1m "
log_file = "  ~/logs/lector.log  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BooksURL != "http://localhost:5000/api/libromaterial" {
		t.Fatalf("BooksURL = %q", cfg.BooksURL)
	}
	if cfg.AuthorsURL != "http://localhost:5001/api/autor" {
		t.Fatalf("AuthorsURL = %q", cfg.AuthorsURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Fatalf("RequestsPerSecond = %v, want 2.5", cfg.RequestsPerSecond)
	}
	if cfg.RefreshEvery != time.Minute {
		t.Fatalf("RefreshEvery = %v, want 1m", cfg.RefreshEvery)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
books_url = "   "
authors_url = ""
request_timeout = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BooksURL != defaultBooksURL || cfg.AuthorsURL != defaultAuthorsURL {
		t.Fatalf("urls = %q %q, want defaults", cfg.BooksURL, cfg.AuthorsURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envBooksURL, " http://env-books/api ")
	t.Setenv(envAuthorsURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`books_url = "http://file-books/api"
authors_url = "http://file-authors/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BooksURL != "http://env-books/api" {
		t.Fatalf("BooksURL = %q, want env value", cfg.BooksURL)
	}
	if cfg.AuthorsURL != "http://file-authors/api" {
		t.Fatalf("AuthorsURL = %q, want file value", cfg.AuthorsURL)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"toml", `books_url = [`, "parse config"},
		{"timeout", `request_timeout = "soon"`, "parse request_timeout"},
		{"refresh", `refresh_every = "-5s"`, "parse refresh_every"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %s", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LECTOR_AUTHORS_URL=http://dotenv/api/autor\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(envAuthorsURL, "")
	os.Unsetenv(envAuthorsURL)

	if err := LoadDotenv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotenv returned error: %v", err)
	}
	if got := os.Getenv(envAuthorsURL); got != "http://dotenv/api/autor" {
		t.Fatalf("%s = %q, want value from .env", envAuthorsURL, got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
