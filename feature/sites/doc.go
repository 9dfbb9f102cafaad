// Package sites exposes the hosted site table over HTTP.
//
//   - GET  /sites          : every site
//   - GET  /sites/:code    : one site, by new code then legacy code
//   - POST /sites/import   : upsert a site sheet (database source only)
//
// The feature is only loaded when a hosted site store is configured.
package sites
