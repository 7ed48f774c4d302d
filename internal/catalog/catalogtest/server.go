// Package catalogtest provides an in-memory stand-in for the book and author
// services, served over httptest.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/five82/lector/internal/catalog"
)

const (
	booksPath   = "/api/libromaterial"
	authorsPath = "/api/autor"
)

// Server fakes both services. Records are kept in insertion order.
type Server struct {
	srv *httptest.Server

	mu      sync.Mutex
	books   []catalog.Book
	authors []catalog.Author

	requests atomic.Int64
	failWith atomic.Int64
}

// NewServer starts a fake. Close it when done.
func NewServer() *Server {
	s := &Server{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+booksPath, s.listBooks)
	mux.HandleFunc("POST "+booksPath, s.createBook)
	mux.HandleFunc("GET "+booksPath+"/{id}", s.getBook)
	mux.HandleFunc("PUT "+booksPath+"/{id}", s.updateBook)
	mux.HandleFunc("DELETE "+booksPath+"/{id}", s.deleteBook)
	mux.HandleFunc("GET "+authorsPath, s.listAuthors)
	mux.HandleFunc("POST "+authorsPath, s.createAuthor)
	mux.HandleFunc("GET "+authorsPath+"/guid/{guid}", s.authorByGUID)
	mux.HandleFunc("GET "+authorsPath+"/nombre/{name}", s.authorByName)

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		if status := s.failWith.Load(); status != 0 {
			http.Error(w, "injected failure", int(status))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return s
}

// Close shuts the fake down.
func (s *Server) Close() { s.srv.Close() }

// BooksURL is the book collection address.
func (s *Server) BooksURL() string { return s.srv.URL + booksPath }

// AuthorsURL is the author collection address.
func (s *Server) AuthorsURL() string { return s.srv.URL + authorsPath }

// Requests counts every request received so far.
func (s *Server) Requests() int { return int(s.requests.Load()) }

// FailWith makes every following request answer with status. Zero restores
// normal service.
func (s *Server) FailWith(status int) { s.failWith.Store(int64(status)) }

// SeedBook stores a book directly and returns it with its assigned id.
func (s *Server) SeedBook(in catalog.BookInput) catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := catalog.Book{ID: uuid.NewString(), Title: in.Title, PublishedAt: in.PublishedAt, AuthorRef: in.AuthorRef}
	s.books = append(s.books, b)
	return b
}

// SeedAuthor stores an author directly and returns it with its assigned guid.
func (s *Server) SeedAuthor(in catalog.AuthorInput) catalog.Author {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := catalog.Author{GUID: uuid.NewString(), FirstName: in.FirstName, LastName: in.LastName, BirthDate: in.BirthDate}
	s.authors = append(s.authors, a)
	return a
}

// Books returns a copy of the stored books.
func (s *Server) Books() []catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Book(nil), s.books...)
}

func (s *Server) listBooks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Books())
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var in catalog.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, s.SeedBook(in))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookIndex(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.books[idx])
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	var in catalog.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookIndex(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	s.books[idx].Title = in.Title
	s.books[idx].PublishedAt = in.PublishedAt
	s.books[idx].AuthorRef = in.AuthorRef
	writeJSON(w, http.StatusOK, s.books[idx])
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookIndex(r.PathValue("id"))
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	s.books = append(s.books[:idx], s.books[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) bookIndex(id string) int {
	for i, b := range s.books {
		if strings.EqualFold(b.ID, id) {
			return i
		}
	}
	return -1
}

func (s *Server) listAuthors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := append([]catalog.Author(nil), s.authors...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAuthor(w http.ResponseWriter, r *http.Request) {
	var in catalog.AuthorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, s.SeedAuthor(in))
}

func (s *Server) authorByGUID(w http.ResponseWriter, r *http.Request) {
	guid := r.PathValue("guid")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.authors {
		if strings.EqualFold(a.GUID, guid) {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) authorByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.authors {
		if strings.EqualFold(a.FirstName, name) || strings.EqualFold(a.FullName(), name) {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	http.NotFound(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
