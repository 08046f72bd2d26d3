package service

import (
	"fmt"

	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

var (
	errMissingDays = fmt.Errorf("days_of_week is required: %w", pkgerrors.ErrValidation)
	errBadDate     = fmt.Errorf("date must be YYYY-MM-DD: %w", pkgerrors.ErrValidation)
)

func wrapValidation(err error) error {
	return fmt.Errorf("%v: %w", err, pkgerrors.ErrValidation)
}
