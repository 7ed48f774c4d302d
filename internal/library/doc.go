// Package library holds the screen logic of the catalog front end: field
// validation, the create/edit form state machine, point lookups and the
// delete confirmation step. It knows nothing about the terminal; internal/ui
// calls it and renders the snapshots it returns.
//
// # Form States
//
//	Hidden --ToggleNew--> Create --ToggleNew--> Hidden
//	  any  --Edit(book)--> Edit(id)
//	Edit/Create --Cancel or successful Submit--> Hidden
//
// Submit dispatches on the mode: Create calls Create, Edit(id) calls Update.
//
// # Errors
//
// Validation errors (ErrMissingField, ErrTitleTooLong, ...) are returned
// before any request is made and carry a specific message. Failures from the
// services are logged and turned into a generic Notice; the returned error
// wraps the catalog error so callers can still inspect it.
//
// # Requests In Flight
//
// A mutation started while another one is running fails with ErrBusy. List
// refreshes are serialized, and every successful mutation is followed by one
// refresh after the mutation returns.
package library
