package library

import (
	"context"
	"log"
	"sync"

	"github.com/five82/lector/internal/catalog"
	"github.com/five82/lector/internal/state"
)

// FormMode is the explicit state of a create/edit form.
type FormMode int

const (
	FormHidden FormMode = iota
	FormCreate
	FormEdit
)

func (m FormMode) String() string {
	switch m {
	case FormCreate:
		return "create"
	case FormEdit:
		return "edit"
	default:
		return "hidden"
	}
}

// Form holds the fields of a form and the mode it is in. EditID is set only
// in FormEdit.
type Form[F any] struct {
	Mode   FormMode
	EditID string
	Fields F
}

// Visible reports whether the form is shown.
func (f Form[F]) Visible() bool { return f.Mode != FormHidden }

// BookFields are the raw inputs of the book form.
type BookFields struct {
	Title       string
	PublishedAt string
	AuthorRef   string
}

// BookFieldsFrom fills the form from a stored record.
func BookFieldsFrom(b catalog.Book) BookFields {
	return BookFields{
		Title:       b.Title,
		PublishedAt: EditTimestamp(b.PublishedAt),
		AuthorRef:   b.AuthorRef,
	}
}

// AuthorFields are the raw inputs of the author form.
type AuthorFields struct {
	FirstName string
	LastName  string
	BirthDate string
}

// Search is the state of a lookup box.
type Search[T any] struct {
	Visible bool
	Query   string
	Result  LookupResult[T]
}

// inflight implements the reject policy: a second mutation while one is
// running fails with ErrBusy.
type inflight struct {
	mu   sync.Mutex
	busy bool
}

func (g *inflight) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	return nil
}

func (g *inflight) end() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

func (g *inflight) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// lister refreshes a store from a full list fetch. Refreshes are serialized
// so an older response can never overwrite a newer one.
type lister[T any] struct {
	mu    sync.Mutex
	name  string
	store *state.Store[T]
	fetch func(ctx context.Context) ([]T, error)
}

func (l *lister[T]) refresh(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.fetch(ctx)
	if err != nil {
		log.Printf("list %s: %v", l.name, err)
		l.store.Update(nil, err)
		return l.store.Records(), err
	}
	l.store.Update(records, nil)
	return l.store.Records(), nil
}
