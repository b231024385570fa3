package service

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/eloquence-api/internal/repository"
	"github.com/vietanh2810/eloquence-api/internal/storage"
)

var (
	ErrRegistrationClosed      = errors.New("registrations are closed")
	ErrCapacityExceeded        = errors.New("capacity exceeded")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrInvalidFoodSelection    = errors.New("invalid food selection")
	ErrSettingsNotBootstrapped = repository.ErrSettingsNotFound
	ErrFoodOptionNotFound      = repository.ErrFoodOptionNotFound
	ErrRegistrationNotFound    = repository.ErrRegistrationNotFound
	ErrContentNotFound         = repository.ErrContentNotFound
	ErrDocumentNotFound        = storage.ErrDocumentNotFound
)

// ValidationError reports field-level problems with a request. Fields maps the
// JSON field name to the reason.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields.Error())
}

// newValidationError keeps field errors as a ValidationError and passes any
// other error (an internal validator failure) through unchanged.
func newValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}

	return err
}

func fieldError(field string, err error) *ValidationError {
	return &ValidationError{Fields: validation.Errors{field: err}}
}

// ExternalFormError means the pool is closed on this API because registrations
// happen on an external form.
type ExternalFormError struct {
	URL string
}

func (e *ExternalFormError) Error() string {
	return fmt.Sprintf("registrations happen on an external form: %s", e.URL)
}

func (e *ExternalFormError) Is(target error) bool {
	return target == ErrRegistrationClosed
}

// RejectionError attributes a business rejection to the request field shown
// next to it on the form. It unwraps to the rejection sentinel.
type RejectionError struct {
	Field string
	Err   error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(field string, err error) error {
	return &RejectionError{Field: field, Err: err}
}
