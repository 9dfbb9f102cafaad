// Package middleware groups the HTTP middleware of the service.
//
//   - auth: rejects requests without the configured API key.
//   - rayid: tags every request with a ray id, stored in locals and echoed in
//     the X-Ray-ID response header, so log lines of one request can be joined.
package middleware
