// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber lifecycle; this package only defines the
// listening port, the API key guarding every route and the maximum size of a
// reconciliation upload.
package server
