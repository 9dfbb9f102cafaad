package reconcile

import "fmt"

// InputReadError means an uploaded file could not be read as a table.
type InputReadError struct {
	Channel string
	Row     int
	Err     error
}

func (e *InputReadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s file, row %d: %v", e.Channel, e.Row, e.Err)
	}
	return fmt.Sprintf("%s file unreadable: %v", e.Channel, e.Err)
}

func (e *InputReadError) Unwrap() error { return e.Err }

// SchemaError means a required canonical column is absent after renaming.
type SchemaError struct {
	Channel string
	Column  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s file is missing required column %q", e.Channel, e.Column)
}

// ReferenceStoreError means the site table could not be fetched.
type ReferenceStoreError struct {
	Op  string
	Err error
}

func (e *ReferenceStoreError) Error() string {
	return fmt.Sprintf("site store %s: %v", e.Op, e.Err)
}

func (e *ReferenceStoreError) Unwrap() error { return e.Err }
