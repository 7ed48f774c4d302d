package library

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/five82/lector/internal/catalog"
)

// MaxTitleLength is counted in characters, not bytes.
const MaxTitleLength = 35

var guidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("guid", validateGUID); err != nil {
		panic(err)
	}
}

func validateGUID(fl validator.FieldLevel) bool {
	return IsValidIdentifierFormat(fl.Field().String())
}

// IsValidIdentifierFormat reports whether value is a dashed 8-4-4-4-12
// hexadecimal identifier. Case is ignored.
func IsValidIdentifierFormat(value string) bool {
	return guidPattern.MatchString(value)
}

// Title length is checked against MaxTitleLength in ValidateBookFields.
type bookRules struct {
	Title       string `validate:"required"`
	PublishedAt string `validate:"required"`
	AuthorRef   string `validate:"required,guid"`
}

type authorRules struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	BirthDate string `validate:"required"`
}

// ValidateBookFields checks the three book inputs. A missing field wins over
// a long title, which wins over a malformed author reference. The title is
// checked exactly as typed: only an empty one is missing, and surrounding
// spaces count towards its length.
func ValidateBookFields(title, publicationDate, authorRef string) error {
	err := classify(validate.Struct(bookRules{
		Title:       title,
		PublishedAt: strings.TrimSpace(publicationDate),
		AuthorRef:   strings.TrimSpace(authorRef),
	}))
	if errors.Is(err, ErrMissingField) {
		return err
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return err
}

// ValidateAuthorFields only requires every field to be present.
func ValidateAuthorFields(firstName, lastName, birthDate string) error {
	err := validate.Struct(authorRules{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		BirthDate: strings.TrimSpace(birthDate),
	})
	return classify(err)
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	var badRef bool
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			return ErrMissingField
		case "guid":
			badRef = true
		}
	}
	if badRef {
		return ErrInvalidAuthorReference
	}
	return err
}

// NormalizeTimestamp turns a user-entered date or date-time into the wire
// timestamp. Inputs without a zone are read as UTC.
func NormalizeTimestamp(value string) (string, error) {
	t, err := parseInput(value)
	if err != nil {
		return "", err
	}
	return catalog.FormatTimestamp(t), nil
}

// NormalizeDate is NormalizeTimestamp truncated to midnight UTC.
func NormalizeDate(value string) (string, error) {
	t, err := parseInput(value)
	if err != nil {
		return "", err
	}
	t = t.UTC()
	return catalog.FormatTimestamp(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
}

func parseInput(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	// "2024-01-02 10:30" is what people type; the services never send it.
	if len(value) > 10 && value[10] == ' ' {
		value = value[:10] + "T" + value[11:]
	}
	t, ok := catalog.ParseTimestamp(value)
	if !ok {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// EditTimestamp renders a stored timestamp the way the edit form shows it.
// Unparseable values are returned as they are.
func EditTimestamp(value string) string {
	t, ok := catalog.ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.UTC().Format("2006-01-02T15:04")
}

// DisplayDate renders a stored timestamp as a calendar date.
func DisplayDate(value string) string {
	t, ok := catalog.ParseTimestamp(value)
	if !ok {
		return value
	}
	return t.UTC().Format("2006-01-02")
}
