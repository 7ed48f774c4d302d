// Package catalog provides an HTTP client for the library's book and author
// services.
//
// # Overview
//
// The two services are hosted independently and expose plain JSON
// collections:
//
//	Books (e.g. https://apilibros-7h0j.onrender.com/api/libromaterial)
//	  GET    /            list
//	  POST   /            create
//	  GET    /{id}        lookup
//	  PUT    /{id}        update
//	  DELETE /{id}        delete
//
//	Authors (e.g. https://apiautor.onrender.com/api/autor)
//	  GET    /            list
//	  POST   /            create
//	  GET    /guid/{guid} lookup by identifier
//	  GET    /nombre/{n}  lookup by name
//
// Each collection is described by an Endpoint, so the addresses are explicit
// values handed to NewClient rather than package state. Tests point the
// client at catalogtest.Server instead.
//
// # Wire format
//
// The services use Spanish field names. Book carries custom JSON methods
// because the book service has shipped the identifier under both
// "libreriaMaterialId" and "id". Timestamps are written in
// WireTimestampLayout and read back with ParseTimestamp, which tolerates the
// formats both services emit.
//
// # Errors
//
//   - ErrNotFound: the service answered 404
//   - *TransportError: anything else (network, status >= 400, bad JSON)
//
// Nothing is retried. Requests are paced by an optional token-bucket
// limiter (golang.org/x/time/rate) and bounded by the http.Client timeout.
package catalog
