// Package config loads lector's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lector/config.toml
//  3. If the file doesn't exist, use defaults
//  4. LECTOR_BOOKS_URL and LECTOR_AUTHORS_URL override the endpoints
//
// LoadDotenv can be called first to pull those variables from a .env file.
//
// # TOML Format
//
//	books_url = "https://apilibros-7h0j.onrender.com/api/libromaterial"
//	authors_url = "https://apiautor.onrender.com/api/autor"
//	request_timeout = "10s"
//	requests_per_second = 5.0
//	refresh_every = "0s"       # background refresh, off by default
//	log_file = "~/.local/state/lector/lector.log"
//
// Every field is optional. Empty strings fall back to the default. Invalid
// TOML, unparseable durations and negative durations are errors.
package config
