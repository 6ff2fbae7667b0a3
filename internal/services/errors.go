package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrIncompleteRange is returned for a custom range missing either bound.
	ErrIncompleteRange = errors.New("custom date range needs both a start and an end date")
	// ErrNoVendor is returned when an operation needs a logged-in vendor.
	ErrNoVendor = errors.New("no vendor is logged in")
	// ErrOrderNotFound is returned when an order is not in the loaded list.
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError reports user input that failed validation.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 && e.Err != nil {
		return e.Err.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validationError converts validator output into a *ValidationError.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &ValidationError{Err: err}
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields, Err: err}
}
