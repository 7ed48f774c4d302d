package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lector/internal/library"
	"github.com/five82/lector/internal/logtail"
)

const (
	actionDeleteBook = "delete-book"

	msgLookupFailed = "Lookup failed. Try again."

	// logTailLines bounds how much of the log file the diagnostics view reads.
	logTailLines = 500
)

// Messages

type tickMsg time.Time

// listedMsg reports that a list refresh finished. The records themselves are
// read back from the controller's store.
type listedMsg struct {
	view View
	err  error
}

// actionMsg carries the outcome of a create, update or delete.
type actionMsg struct {
	view   View
	notice library.Notice
	err    error
}

// lookupMsg reports that a point lookup finished. err is only set for
// pre-flight rejections; the result lives in the controller's search state.
type lookupMsg struct {
	view View
	err  error
}

type logLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func listBooksCmd(ctx context.Context, books *library.Books) tea.Cmd {
	if books == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := books.List(ctx)
		return listedMsg{view: ViewBooks, err: err}
	}
}

func listAuthorsCmd(ctx context.Context, authors *library.Authors) tea.Cmd {
	if authors == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := authors.List(ctx)
		return listedMsg{view: ViewAuthors, err: err}
	}
}

func submitBookCmd(ctx context.Context, books *library.Books, fields library.BookFields) tea.Cmd {
	return func() tea.Msg {
		notice, err := books.Submit(ctx, fields)
		return actionMsg{view: ViewBooks, notice: notice, err: err}
	}
}

func submitAuthorCmd(ctx context.Context, authors *library.Authors, fields library.AuthorFields) tea.Cmd {
	return func() tea.Msg {
		notice, err := authors.Submit(ctx, fields)
		return actionMsg{view: ViewAuthors, notice: notice, err: err}
	}
}

func removeBookCmd(ctx context.Context, books *library.Books) tea.Cmd {
	return func() tea.Msg {
		notice, err := books.ConfirmRemove(ctx)
		return actionMsg{view: ViewBooks, notice: notice, err: err}
	}
}

func findBookCmd(ctx context.Context, books *library.Books, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := books.FindByID(ctx, id)
		return lookupMsg{view: ViewBooks, err: err}
	}
}

func findAuthorCmd(ctx context.Context, authors *library.Authors, query string, byGUID bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if byGUID {
			_, err = authors.FindByGUID(ctx, query)
		} else {
			_, err = authors.FindByName(ctx, query)
		}
		return lookupMsg{view: ViewAuthors, err: err}
	}
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logLoadedMsg{err: err}
		}
		return logLoadedMsg{entries: logtail.ParseAll(lines)}
	}
}
