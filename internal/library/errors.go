package library

import "errors"

// Pre-flight errors. None of them is returned after a network call was made.
var (
	ErrMissingField           = errors.New("all fields are required")
	ErrTitleTooLong           = errors.New("title must be at most 35 characters")
	ErrInvalidAuthorReference = errors.New("author reference must be a valid GUID")
	ErrInvalidID              = errors.New("id must be a valid GUID")
	ErrInvalidDate            = errors.New("date is not valid, use YYYY-MM-DD or YYYY-MM-DDTHH:MM")
	ErrEmptyID                = errors.New("enter an id")
	ErrEmptyQuery             = errors.New("enter a GUID or a name")
	ErrBusy                   = errors.New("another request is still running")
	ErrNotConfirmed           = errors.New("delete was not confirmed")
	ErrFormHidden             = errors.New("form is not open")
)

var preflight = []error{
	ErrMissingField,
	ErrTitleTooLong,
	ErrInvalidAuthorReference,
	ErrInvalidID,
	ErrInvalidDate,
	ErrEmptyID,
	ErrEmptyQuery,
	ErrBusy,
	ErrNotConfirmed,
	ErrFormHidden,
}

// IsPreflight reports whether err was raised locally before any request.
func IsPreflight(err error) bool {
	for _, target := range preflight {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
