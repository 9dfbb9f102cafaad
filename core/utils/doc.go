// Package utils holds small value conversion helpers used when reading form
// fields, query parameters and command flags.
package utils
