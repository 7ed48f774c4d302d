package library

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/five82/lector/internal/catalog"
	"github.com/five82/lector/internal/state"
)

const msgSaveAuthorFailed = "Could not save author. Check the data."

// AuthorsView is a copy of everything the author screen renders.
type AuthorsView struct {
	List   state.Snapshot[catalog.Author]
	Form   Form[AuthorFields]
	Search Search[catalog.Author]
	Busy   bool
}

// Authors drives the author screen. Authors can be listed, created and
// looked up by GUID or by name; the service offers no update or delete.
type Authors struct {
	svc   catalog.AuthorService
	store *state.Store[catalog.Author]
	list  *lister[catalog.Author]
	guard inflight

	mu        sync.Mutex
	form      Form[AuthorFields]
	search    Search[catalog.Author]
	searchGen uint64
}

func NewAuthors(svc catalog.AuthorService, store *state.Store[catalog.Author]) *Authors {
	if store == nil {
		store = &state.Store[catalog.Author]{}
	}
	// The author screen always shows its search box.
	return &Authors{
		svc:    svc,
		store:  store,
		list:   &lister[catalog.Author]{name: "authors", store: store, fetch: svc.ListAuthors},
		search: Search[catalog.Author]{Visible: true},
	}
}

func (a *Authors) Store() *state.Store[catalog.Author] { return a.store }

func (a *Authors) Busy() bool { return a.guard.Busy() }

// List fetches every author into the store.
func (a *Authors) List(ctx context.Context) ([]catalog.Author, error) {
	return a.list.refresh(ctx)
}

// Create validates and submits a new author. The birth date is sent as
// midnight UTC.
func (a *Authors) Create(ctx context.Context, fields AuthorFields) (Notice, error) {
	if err := ValidateAuthorFields(fields.FirstName, fields.LastName, fields.BirthDate); err != nil {
		return NoticeFor(err, msgSaveAuthorFailed), err
	}
	born, err := NormalizeDate(fields.BirthDate)
	if err != nil {
		return NoticeFor(err, msgSaveAuthorFailed), err
	}
	if err := a.guard.begin(); err != nil {
		return NoticeFor(err, msgSaveAuthorFailed), err
	}
	defer a.guard.end()

	in := catalog.AuthorInput{
		FirstName: strings.TrimSpace(fields.FirstName),
		LastName:  strings.TrimSpace(fields.LastName),
		BirthDate: born,
	}
	if err := a.svc.CreateAuthor(ctx, in); err != nil {
		log.Printf("create author %s %s: %v", in.FirstName, in.LastName, err)
		return NoticeFor(err, msgSaveAuthorFailed), fmt.Errorf("create author: %w", err)
	}

	a.mu.Lock()
	a.form = Form[AuthorFields]{}
	a.mu.Unlock()
	_, _ = a.list.refresh(ctx)
	return success("Author created"), nil
}

// Submit sends the open form. The author form only has a create mode.
func (a *Authors) Submit(ctx context.Context, fields AuthorFields) (Notice, error) {
	a.mu.Lock()
	mode := a.form.Mode
	if mode != FormHidden {
		a.form.Fields = fields
	}
	a.mu.Unlock()

	if mode == FormHidden {
		return NoticeFor(ErrFormHidden, msgSaveAuthorFailed), ErrFormHidden
	}
	return a.Create(ctx, fields)
}

// CheckSubmit is the pre-flight part of Submit.
func (a *Authors) CheckSubmit(fields AuthorFields) error {
	a.mu.Lock()
	mode := a.form.Mode
	a.mu.Unlock()

	if mode == FormHidden {
		return ErrFormHidden
	}
	if err := ValidateAuthorFields(fields.FirstName, fields.LastName, fields.BirthDate); err != nil {
		return err
	}
	if _, err := NormalizeDate(fields.BirthDate); err != nil {
		return err
	}
	if a.guard.Busy() {
		return ErrBusy
	}
	return nil
}

// ToggleForm shows or hides the create form. Hiding clears it.
func (a *Authors) ToggleForm() FormMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.form.Mode == FormHidden {
		a.form = Form[AuthorFields]{Mode: FormCreate}
	} else {
		a.form = Form[AuthorFields]{}
	}
	return a.form.Mode
}

func (a *Authors) Cancel() {
	a.mu.Lock()
	a.form = Form[AuthorFields]{}
	a.mu.Unlock()
}

func (a *Authors) SetQuery(q string) {
	a.mu.Lock()
	a.search.Query = q
	a.mu.Unlock()
}

// ClearSearch drops the query and any previous result.
func (a *Authors) ClearSearch() {
	a.mu.Lock()
	a.search = Search[catalog.Author]{Visible: true}
	a.searchGen++
	a.mu.Unlock()
}

// FindByGUID looks an author up by identifier. Malformed identifiers are
// rejected without a request.
func (a *Authors) FindByGUID(ctx context.Context, guid string) (LookupResult[catalog.Author], error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return LookupResult[catalog.Author]{}, ErrEmptyQuery
	}
	if !IsValidIdentifierFormat(guid) {
		return LookupResult[catalog.Author]{}, ErrInvalidID
	}
	return a.lookup(ctx, guid, a.svc.AuthorByGUID)
}

// FindByName looks an author up by name.
func (a *Authors) FindByName(ctx context.Context, name string) (LookupResult[catalog.Author], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LookupResult[catalog.Author]{}, ErrEmptyQuery
	}
	return a.lookup(ctx, name, a.svc.AuthorByName)
}

func (a *Authors) lookup(ctx context.Context, q string, fetch func(context.Context, string) (catalog.Author, error)) (LookupResult[catalog.Author], error) {
	a.mu.Lock()
	a.search.Query = q
	gen := a.searchGen
	a.mu.Unlock()

	author, err := fetch(ctx, q)
	if err != nil {
		log.Printf("find author %q: %v", q, err)
	}
	result := lookupOutcome(author, err)

	a.mu.Lock()
	if gen == a.searchGen {
		a.search.Result = result
	}
	a.mu.Unlock()
	return result, nil
}

func (a *Authors) Snapshot() AuthorsView {
	a.mu.Lock()
	view := AuthorsView{Form: a.form, Search: a.search}
	a.mu.Unlock()
	view.List = a.store.Snapshot()
	view.Busy = a.guard.Busy()
	return view
}
