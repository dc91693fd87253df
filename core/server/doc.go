// Package server holds the HTTP server configuration.
//
// The start command owns the actual Fiber server lifecycle; this package only
// defines the settings it boots with (listen port, API key protecting the
// scan and catalog endpoints).
package server
