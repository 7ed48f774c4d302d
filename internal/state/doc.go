// Package state holds the in-memory record lists shown by the UI.
//
// # Overview
//
// Each resource (books, authors) has its own Store. A Store is written by
// whoever fetched the list (the controller after a mutation, the optional
// background poller) and read by the UI through Snapshot.
//
// # Update Semantics
//
//	// Success: the whole list is replaced, never patched
//	store.Update(records, nil)
//	→ Records = records, Loaded = true, LastError = nil, Generation++
//
//	// Failure: previous records stay, the error is recorded
//	store.Update(nil, err)
//	→ Records = <unchanged>, LastError = err, ConsecutiveFailures++
//
// Keeping the previous list on failure means a failed refresh never blanks
// the table; the header shows the error instead.
//
// # Concurrency
//
// Update takes the write lock, Snapshot the read lock. Both copy the record
// slice so callers can never alias the stored list. The lock is never held
// across network I/O.
package state
