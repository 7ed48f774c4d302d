// Package ui renders the lector terminal interface with Bubble Tea.
//
// The Model keeps copies of the book and author controller state and
// refreshes them after every message, so View never takes a lock. Requests
// run inside tea.Cmd functions; before a save or lookup is handed to a
// command, the same pre-flight checks the controller will run are applied
// in Update so validation problems appear immediately and never reach the
// network.
package ui
