package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lector/internal/catalog"
	"github.com/five82/lector/internal/config"
	"github.com/five82/lector/internal/library"
	"github.com/five82/lector/internal/prefs"
	"github.com/five82/lector/internal/ui"
)

// Options configure the lector application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/lector/prefs.toml
	RefreshEvery int    // seconds; zero keeps the configured value
}

// Run boots the lector TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadDotenv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load lector config: %w", err)
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshEvery = time.Duration(opts.RefreshEvery) * time.Second
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := catalog.NewClient(catalog.Options{
		BooksURL:          cfg.BooksURL,
		AuthorsURL:        cfg.AuthorsURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	books := library.NewBooks(client, nil)
	authors := library.NewAuthors(client, nil)

	// Background refresh is off unless configured; the UI loads both lists
	// on start and after every change.
	if cfg.RefreshEvery > 0 {
		StartPoller(ctx, cfg.RefreshEvery,
			Source{Name: "books", Refresh: discard(books.List), Busy: books.Busy},
			Source{Name: "authors", Refresh: discard(authors.List), Busy: authors.Busy},
		)
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Books:     books,
		Authors:   authors,
		LogPath:   cfg.LogFile,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.StartView,
		PrefsPath: opts.PrefsPath,
	})
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openLog sends the standard logger to path. A terminal UI owns stdout, so
// nothing may be logged there.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func discard[T any](list func(context.Context) ([]T, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := list(ctx)
		return err
	}
}
