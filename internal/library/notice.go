package library

import (
	"errors"

	"github.com/five82/lector/internal/catalog"
)

// Level orders notices by severity.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "ok"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is the one-line message shown to the user after an action.
type Notice struct {
	Level Level
	Text  string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool { return n.Text == "" }

func success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }

// NoticeFor turns err into a notice. Pre-flight errors keep their specific
// text; anything from the service collapses into the generic message.
func NoticeFor(err error, generic string) Notice {
	if IsPreflight(err) {
		return Notice{Level: LevelWarn, Text: capitalize(err.Error())}
	}
	return Notice{Level: LevelError, Text: generic}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// LookupKind tags the variants of LookupResult.
type LookupKind int

const (
	LookupNone LookupKind = iota
	LookupFound
	LookupNotFound
	LookupFailed
)

// LookupResult is the outcome of a point lookup. Record is only meaningful
// when Kind is LookupFound, Err only when Kind is LookupFailed.
type LookupResult[T any] struct {
	Kind   LookupKind
	Record T
	Err    error
}

// Found reports whether a record was returned.
func (r LookupResult[T]) Found() bool { return r.Kind == LookupFound }

func lookupOutcome[T any](record T, err error) LookupResult[T] {
	switch {
	case err == nil:
		return LookupResult[T]{Kind: LookupFound, Record: record}
	case errors.Is(err, catalog.ErrNotFound):
		return LookupResult[T]{Kind: LookupNotFound}
	default:
		return LookupResult[T]{Kind: LookupFailed, Err: err}
	}
}
