package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound    = errors.New("product not found or is inactive")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNameTooLong        = fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	ErrDescriptionTooLong = fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrPricePrecision     = errors.New("price must have at most 2 decimal places")
	ErrPriceTooLarge      = errors.New("price exceeds the storable range")
	ErrNegativeStock      = errors.New("stock quantity cannot be negative")
	ErrInvalidCategory    = errors.New("category id must be positive")

	// Category errors
	ErrCategoryNotFound         = errors.New("category not found")
	ErrEmptyCategoryDescription = errors.New("category description cannot be empty")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldErrors flattens a validation error into field -> messages.
// Errors that carry no field are reported under "".
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)
	collectFieldErrors(err, out)
	return out
}

func collectFieldErrors(err error, out map[string][]string) {
	switch e := err.(type) {
	case nil:
		return
	case *FieldError:
		out[e.Field] = append(out[e.Field], e.Err.Error())
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectFieldErrors(inner, out)
		}
	case interface{ Unwrap() error }:
		collectFieldErrors(e.Unwrap(), out)
	default:
		out[""] = append(out[""], err.Error())
	}
}
