// Package logtail reads the end of lector's own log file for the
// diagnostics view.
//
// lector runs full screen, so the standard logger is pointed at a file
// (see internal/app). Transport failures, failed refreshes and poller
// backoff end up there; this package brings them back on screen.
//
// # Reading
//
// Read keeps a ring buffer of the last maxLines lines, so memory use does
// not depend on the file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 500)
//
// A missing file returns no lines and no error.
//
// # Parsing
//
// Parse recognizes the "2006/01/02 15:04:05 " prefix of log.LstdFlags and
// splits it from the message. Lines without it are kept as they are.
// Filter narrows entries to those whose message contains a query.
package logtail
