package picking

import (
	"errors"
	"fmt"

	"picklist/core/metrics"
	"picklist/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// LedgerError means distributions could not be recorded. The run is
// abandoned and no reports are stored.
type LedgerError struct {
	Err error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("distribution ledger: %v", e.Err)
}

func (e *LedgerError) Unwrap() error { return e.Err }

// StatusFor maps a run error to an HTTP status.
func StatusFor(err error) int {
	var (
		readErr   *reconcile.InputReadError
		schemaErr *reconcile.SchemaError
		storeErr  *reconcile.ReferenceStoreError
	)
	switch {
	case errors.As(err, &readErr), errors.As(err, &schemaErr):
		return fiber.StatusBadRequest
	case errors.As(err, &storeErr):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrRunNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func resultLabel(err error) string {
	var (
		readErr   *reconcile.InputReadError
		schemaErr *reconcile.SchemaError
		storeErr  *reconcile.ReferenceStoreError
		ledgerErr *LedgerError
	)
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.As(err, &readErr), errors.As(err, &schemaErr):
		return metrics.ResultInputError
	case errors.As(err, &storeErr):
		return metrics.ResultStoreError
	case errors.As(err, &ledgerErr):
		return metrics.ResultLedgerError
	default:
		return metrics.ResultError
	}
}
