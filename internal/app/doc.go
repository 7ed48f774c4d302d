// Package app is the composition root of lector.
//
// Run loads .env and the TOML config, routes the standard logger to the log
// file, builds the catalog client and the book and author controllers, and
// starts the Bubble Tea UI. It blocks until the user quits or the context
// is cancelled.
//
// When refresh_every is set, StartPoller keeps both lists fresh in the
// background. Each list has its own goroutine; a tick is skipped while a
// mutation on that list is in flight, and consecutive failures back off
// exponentially up to 30 seconds. With refresh_every unset the lists are
// only fetched on start, on request, and after each change.
//
// Fatal errors (returned from Run):
//   - unreadable .env or config file, or invalid durations in it
//   - log directory or file that cannot be created
//   - malformed service URLs
//
// Everything else is logged and shown in the UI.
package app
