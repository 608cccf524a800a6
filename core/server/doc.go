// Package server holds the HTTP server configuration.
//
// While the cmd package handles the server startup, this package defines the
// listen address and the graceful shutdown budget.
package server
