package catalog

import (
	"encoding/json"
	"strings"
	"time"
)

// WireTimestampLayout is the timestamp shape the services expect on writes:
// UTC with millisecond precision and a literal Z suffix.
const WireTimestampLayout = "2006-01-02T15:04:05.000Z"

// readLayouts are accepted when parsing timestamps coming back from the
// services, which do not agree on a single format.
var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Book mirrors a record of the book service.
type Book struct {
	ID          string
	Title       string
	PublishedAt string
	AuthorRef   string
}

type bookWire struct {
	MaterialID  string `json:"libreriaMaterialId,omitempty"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"titulo"`
	PublishedAt string `json:"fechaPublicacion"`
	AuthorRef   string `json:"autorLibro"`
}

// UnmarshalJSON accepts either libreriaMaterialId or id as the identifier,
// preferring libreriaMaterialId.
func (b *Book) UnmarshalJSON(data []byte) error {
	var w bookWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.ID = strings.TrimSpace(w.MaterialID)
	if b.ID == "" {
		b.ID = strings.TrimSpace(w.ID)
	}
	b.Title = w.Title
	b.PublishedAt = w.PublishedAt
	b.AuthorRef = w.AuthorRef
	return nil
}

// MarshalJSON writes the book in the book service's wire shape.
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookWire{
		MaterialID:  b.ID,
		Title:       b.Title,
		PublishedAt: b.PublishedAt,
		AuthorRef:   b.AuthorRef,
	})
}

// PublishedTime parses PublishedAt. The bool is false when the service sent
// something unparseable.
func (b Book) PublishedTime() (time.Time, bool) {
	return ParseTimestamp(b.PublishedAt)
}

// BookInput is the request body for creating or updating a book.
type BookInput struct {
	Title       string `json:"titulo"`
	PublishedAt string `json:"fechaPublicacion"`
	AuthorRef   string `json:"autorLibro"`
}

// Author mirrors a record of the author service.
type Author struct {
	GUID      string `json:"autorLibroGuid"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	BirthDate string `json:"fechaNacimiento"`
}

// FullName joins first and last name.
func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// BirthTime parses BirthDate.
func (a Author) BirthTime() (time.Time, bool) {
	return ParseTimestamp(a.BirthDate)
}

// AuthorInput is the request body for creating an author.
type AuthorInput struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	BirthDate string `json:"fechaNacimiento"`
}

// ParseTimestamp parses any of the timestamp shapes the services emit.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t in WireTimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(WireTimestampLayout)
}
