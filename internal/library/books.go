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

const (
	msgSaveBookFailed   = "Could not save book. Check the data."
	msgDeleteBookFailed = "Could not delete book."
)

// BooksView is a copy of everything the book screen renders.
type BooksView struct {
	List          state.Snapshot[catalog.Book]
	Form          Form[BookFields]
	Search        Search[catalog.Book]
	PendingRemove string
	Busy          bool
}

// Books drives the book screen: list, form, search and delete confirmation.
type Books struct {
	svc   catalog.BookService
	store *state.Store[catalog.Book]
	list  *lister[catalog.Book]
	guard inflight

	mu            sync.Mutex
	form          Form[BookFields]
	search        Search[catalog.Book]
	searchGen     uint64
	pendingRemove string
}

// NewBooks wires a controller to svc. A nil store gets a fresh one.
func NewBooks(svc catalog.BookService, store *state.Store[catalog.Book]) *Books {
	if store == nil {
		store = &state.Store[catalog.Book]{}
	}
	return &Books{
		svc:   svc,
		store: store,
		list:  &lister[catalog.Book]{name: "books", store: store, fetch: svc.ListBooks},
	}
}

// Store exposes the record store backing the list.
func (b *Books) Store() *state.Store[catalog.Book] { return b.store }

// Busy reports whether a mutation is in flight.
func (b *Books) Busy() bool { return b.guard.Busy() }

// List fetches every book into the store. On failure the previous list is
// kept and returned together with the error.
func (b *Books) List(ctx context.Context) ([]catalog.Book, error) {
	return b.list.refresh(ctx)
}

// Create validates fields and submits a new book, then resets the form and
// refreshes the list.
func (b *Books) Create(ctx context.Context, fields BookFields) (Notice, error) {
	in, err := bookInput(fields)
	if err != nil {
		return NoticeFor(err, msgSaveBookFailed), err
	}
	if err := b.guard.begin(); err != nil {
		return NoticeFor(err, msgSaveBookFailed), err
	}
	defer b.guard.end()

	if err := b.svc.CreateBook(ctx, in); err != nil {
		log.Printf("create book %q: %v", in.Title, err)
		return NoticeFor(err, msgSaveBookFailed), fmt.Errorf("create book: %w", err)
	}
	b.resetForm()
	_, _ = b.list.refresh(ctx)
	return success("Book created"), nil
}

// Update is Create for an existing record. id must be a GUID.
func (b *Books) Update(ctx context.Context, id string, fields BookFields) (Notice, error) {
	id = strings.TrimSpace(id)
	if !IsValidIdentifierFormat(id) {
		return NoticeFor(ErrInvalidID, msgSaveBookFailed), ErrInvalidID
	}
	in, err := bookInput(fields)
	if err != nil {
		return NoticeFor(err, msgSaveBookFailed), err
	}
	if err := b.guard.begin(); err != nil {
		return NoticeFor(err, msgSaveBookFailed), err
	}
	defer b.guard.end()

	if err := b.svc.UpdateBook(ctx, id, in); err != nil {
		log.Printf("update book %s: %v", id, err)
		return NoticeFor(err, msgSaveBookFailed), fmt.Errorf("update book %s: %w", id, err)
	}
	b.resetForm()
	_, _ = b.list.refresh(ctx)
	return success("Book updated"), nil
}

func bookInput(fields BookFields) (catalog.BookInput, error) {
	if err := ValidateBookFields(fields.Title, fields.PublishedAt, fields.AuthorRef); err != nil {
		return catalog.BookInput{}, err
	}
	published, err := NormalizeTimestamp(fields.PublishedAt)
	if err != nil {
		return catalog.BookInput{}, err
	}
	return catalog.BookInput{
		Title:       fields.Title,
		PublishedAt: published,
		AuthorRef:   strings.TrimSpace(fields.AuthorRef),
	}, nil
}

// RequestRemove asks for confirmation before id is deleted.
func (b *Books) RequestRemove(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	b.mu.Lock()
	b.pendingRemove = id
	b.mu.Unlock()
	return nil
}

// CancelRemove drops a pending delete.
func (b *Books) CancelRemove() {
	b.mu.Lock()
	b.pendingRemove = ""
	b.mu.Unlock()
}

// ConfirmRemove deletes the book named by the last RequestRemove.
func (b *Books) ConfirmRemove(ctx context.Context) (Notice, error) {
	b.mu.Lock()
	id := b.pendingRemove
	b.mu.Unlock()
	return b.Remove(ctx, id)
}

// Remove deletes id. It only proceeds when id is the pending confirmed
// delete; anything else fails with ErrNotConfirmed.
func (b *Books) Remove(ctx context.Context, id string) (Notice, error) {
	id = strings.TrimSpace(id)
	b.mu.Lock()
	if id == "" || id != b.pendingRemove {
		b.mu.Unlock()
		return NoticeFor(ErrNotConfirmed, msgDeleteBookFailed), ErrNotConfirmed
	}
	b.pendingRemove = ""
	b.mu.Unlock()

	if err := b.guard.begin(); err != nil {
		return NoticeFor(err, msgDeleteBookFailed), err
	}
	defer b.guard.end()

	if err := b.svc.DeleteBook(ctx, id); err != nil {
		log.Printf("delete book %s: %v", id, err)
		return NoticeFor(err, msgDeleteBookFailed), fmt.Errorf("delete book %s: %w", id, err)
	}

	b.mu.Lock()
	if b.form.Mode == FormEdit && b.form.EditID == id {
		b.form = Form[BookFields]{}
	}
	if b.search.Result.Found() && b.search.Result.Record.ID == id {
		b.search.Result = LookupResult[catalog.Book]{}
	}
	b.mu.Unlock()

	_, _ = b.list.refresh(ctx)
	return success("Book deleted"), nil
}

// FindByID looks a single book up and stores the result in the search
// state. An empty id is rejected without a request.
func (b *Books) FindByID(ctx context.Context, id string) (LookupResult[catalog.Book], error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return LookupResult[catalog.Book]{}, ErrEmptyID
	}

	b.mu.Lock()
	b.search.Query = id
	gen := b.searchGen
	b.mu.Unlock()

	book, err := b.svc.GetBook(ctx, id)
	if err != nil {
		log.Printf("get book %s: %v", id, err)
	}
	result := lookupOutcome(book, err)

	b.mu.Lock()
	// A toggle while the request was out resets the search; drop the answer.
	if gen == b.searchGen {
		b.search.Result = result
	}
	b.mu.Unlock()
	return result, nil
}

// ToggleSearch shows or hides the search box. Either way the query and the
// previous result are cleared.
func (b *Books) ToggleSearch() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = Search[catalog.Book]{Visible: !b.search.Visible}
	b.searchGen++
}

// SetSearchID records the text typed into the search box.
func (b *Books) SetSearchID(id string) {
	b.mu.Lock()
	b.search.Query = id
	b.mu.Unlock()
}

// ToggleNew opens an empty create form or closes it again. It does nothing
// while a record is being edited.
func (b *Books) ToggleNew() FormMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.form.Mode {
	case FormHidden:
		b.form = Form[BookFields]{Mode: FormCreate}
	case FormCreate:
		b.form = Form[BookFields]{}
	}
	return b.form.Mode
}

// Edit opens the form for book, whatever state it was in.
func (b *Books) Edit(book catalog.Book) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = Form[BookFields]{Mode: FormEdit, EditID: book.ID, Fields: BookFieldsFrom(book)}
}

// Cancel hides the form and clears its fields.
func (b *Books) Cancel() {
	b.resetForm()
}

// SetFields records the current form inputs so they survive a failed submit.
func (b *Books) SetFields(fields BookFields) {
	b.mu.Lock()
	b.form.Fields = fields
	b.mu.Unlock()
}

// Submit routes the form to Create or Update depending on its mode.
func (b *Books) Submit(ctx context.Context, fields BookFields) (Notice, error) {
	b.mu.Lock()
	form := b.form
	if form.Mode != FormHidden {
		b.form.Fields = fields
	}
	b.mu.Unlock()

	switch form.Mode {
	case FormCreate:
		return b.Create(ctx, fields)
	case FormEdit:
		return b.Update(ctx, form.EditID, fields)
	case FormHidden:
		return NoticeFor(ErrFormHidden, msgSaveBookFailed), ErrFormHidden
	default:
		return Notice{}, fmt.Errorf("unknown form mode %d", form.Mode)
	}
}

// CheckSubmit runs every check Submit would run before its request, without
// sending anything. The UI calls it to report problems immediately.
func (b *Books) CheckSubmit(fields BookFields) error {
	b.mu.Lock()
	form := b.form
	b.mu.Unlock()

	switch form.Mode {
	case FormHidden:
		return ErrFormHidden
	case FormEdit:
		if !IsValidIdentifierFormat(strings.TrimSpace(form.EditID)) {
			return ErrInvalidID
		}
	}
	if _, err := bookInput(fields); err != nil {
		return err
	}
	if b.guard.Busy() {
		return ErrBusy
	}
	return nil
}

// Snapshot copies the screen state.
func (b *Books) Snapshot() BooksView {
	b.mu.Lock()
	view := BooksView{
		Form:          b.form,
		Search:        b.search,
		PendingRemove: b.pendingRemove,
	}
	b.mu.Unlock()
	view.List = b.store.Snapshot()
	view.Busy = b.guard.Busy()
	return view
}

func (b *Books) resetForm() {
	b.mu.Lock()
	b.form = Form[BookFields]{}
	b.mu.Unlock()
}
