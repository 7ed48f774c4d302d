package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// BookService is the remote book collaborator. *Client implements it; tests
// substitute their own.
type BookService interface {
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id string) (Book, error)
	CreateBook(ctx context.Context, in BookInput) error
	UpdateBook(ctx context.Context, id string, in BookInput) error
	DeleteBook(ctx context.Context, id string) error
}

// AuthorService is the remote author collaborator.
type AuthorService interface {
	ListAuthors(ctx context.Context) ([]Author, error)
	CreateAuthor(ctx context.Context, in AuthorInput) error
	AuthorByGUID(ctx context.Context, guid string) (Author, error)
	AuthorByName(ctx context.Context, name string) (Author, error)
}

// Ensure Client implements both services at compile time.
var (
	_ BookService   = (*Client)(nil)
	_ AuthorService = (*Client)(nil)
)

const (
	defaultUserAgent      = "lector/0.1"
	defaultRequestTimeout = 10 * time.Second
)

// Endpoint is the base address of one resource collection.
type Endpoint struct {
	base *url.URL
}

// NewEndpoint parses a collection URL such as
// https://host/api/libromaterial. A missing scheme defaults to http.
func NewEndpoint(raw string) (Endpoint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Endpoint{}, fmt.Errorf("endpoint url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("endpoint %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return Endpoint{base: u}, nil
}

// ListURL addresses the whole collection.
func (e Endpoint) ListURL() string {
	if e.base == nil {
		return ""
	}
	return e.base.String()
}

// ItemURL addresses a single record.
func (e Endpoint) ItemURL(id string) string {
	return e.join(id)
}

// GUIDURL addresses an author lookup by identifier.
func (e Endpoint) GUIDURL(guid string) string {
	return e.join("guid", guid)
}

// NameURL addresses an author lookup by name.
func (e Endpoint) NameURL(name string) string {
	return e.join("nombre", name)
}

func (e Endpoint) join(segments ...string) string {
	if e.base == nil {
		return ""
	}
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return e.base.String() + "/" + strings.Join(escaped, "/")
}

// Options configure a Client.
type Options struct {
	BooksURL          string
	AuthorsURL        string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client talks to the book and author services.
type Client struct {
	books     Endpoint
	authors   Endpoint
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient builds a Client from the two collection URLs.
func NewClient(opts Options) (*Client, error) {
	books, err := NewEndpoint(opts.BooksURL)
	if err != nil {
		return nil, fmt.Errorf("books endpoint: %w", err)
	}
	authors, err := NewEndpoint(opts.AuthorsURL)
	if err != nil {
		return nil, fmt.Errorf("authors endpoint: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		books:     books,
		authors:   authors,
		http:      httpClient,
		limiter:   limiter,
		userAgent: defaultUserAgent,
	}, nil
}

// Books returns the book collection endpoint.
func (c *Client) Books() Endpoint { return c.books }

// Authors returns the author collection endpoint.
func (c *Client) Authors() Endpoint { return c.authors }

// ListBooks retrieves every book.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Book
	if err := c.do(ctx, "list books", http.MethodGet, c.books.ListURL(), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetBook retrieves one book by identifier.
func (c *Client) GetBook(ctx context.Context, id string) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	var payload Book
	if err := c.do(ctx, "get book", http.MethodGet, c.books.ItemURL(id), nil, &payload); err != nil {
		return Book{}, err
	}
	return payload, nil
}

// CreateBook submits a new book.
func (c *Client) CreateBook(ctx context.Context, in BookInput) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, "create book", http.MethodPost, c.books.ListURL(), in, nil)
}

// UpdateBook replaces the book with the given identifier.
func (c *Client) UpdateBook(ctx context.Context, id string, in BookInput) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, "update book", http.MethodPut, c.books.ItemURL(id), in, nil)
}

// DeleteBook removes the book with the given identifier.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, "delete book", http.MethodDelete, c.books.ItemURL(id), nil, nil)
}

// ListAuthors retrieves every author.
func (c *Client) ListAuthors(ctx context.Context) ([]Author, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Author
	if err := c.do(ctx, "list authors", http.MethodGet, c.authors.ListURL(), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateAuthor submits a new author.
func (c *Client) CreateAuthor(ctx context.Context, in AuthorInput) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, "create author", http.MethodPost, c.authors.ListURL(), in, nil)
}

// AuthorByGUID looks an author up by identifier.
func (c *Client) AuthorByGUID(ctx context.Context, guid string) (Author, error) {
	if c == nil {
		return Author{}, fmt.Errorf("client is nil")
	}
	var payload Author
	if err := c.do(ctx, "get author", http.MethodGet, c.authors.GUIDURL(guid), nil, &payload); err != nil {
		return Author{}, err
	}
	return payload, nil
}

// AuthorByName looks an author up by name.
func (c *Client) AuthorByName(ctx context.Context, name string) (Author, error) {
	if c == nil {
		return Author{}, fmt.Errorf("client is nil")
	}
	var payload Author
	if err := c.do(ctx, "find author", http.MethodGet, c.authors.NameURL(name), nil, &payload); err != nil {
		return Author{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, op, method, target string, body, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return &TransportError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("api %s %s returned status %d", method, req.URL.Path, resp.StatusCode),
		}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
