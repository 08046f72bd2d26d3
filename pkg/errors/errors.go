// Package errors holds the error kinds shared by every layer.
//
// Services declare their own sentinels wrapping one of these kinds, e.g.
//
//	var ErrMedicationNotFound = fmt.Errorf("medication not found: %w", errors.ErrNotFound)
//
// so handlers can fall back to the kind when a module error has no
// dedicated business code.
package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	// ErrOptimisticLock means the row changed since it was read.
	ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")
)

// HTTPStatus maps an error to the status code of its kind.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrOptimisticLock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
