package services

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/repositories"
)

// Error variables
var (
	ErrNotFound           = errors.New("Not found.")
	ErrUnauthenticated    = errors.New("Authentication credentials were not provided.")
	ErrInvalidCredentials = errors.New("Unable to authenticate with provided credentials.")
)

// Field error messages.
const (
	msgRequired  = "This field is required."
	msgBlank     = "This field may not be blank."
	msgMaxLength = "Ensure this field has no more than 255 characters."
	msgMinValue  = "Ensure this value is greater than or equal to 0."
	msgMaxValue  = "Ensure this value is less than or equal to 2147483647."
)

const maxCharLength = 255

// maxIntValue is the largest value an INTEGER column holds.
const maxIntValue = math.MaxInt32

// ValidationError reports invalid input, keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add records msg for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Err returns e when at least one field failed, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// checkText validates a submitted string field. Blank values are rejected
// unless allowBlank is set; the trimmed value is returned.
func checkText(v *ValidationError, field, value string, allowBlank bool) string {
	value = strings.TrimSpace(value)
	if value == "" && !allowBlank {
		v.Add(field, msgBlank)
		return value
	}
	if len([]rune(value)) > maxCharLength {
		v.Add(field, msgMaxLength)
	}
	return value
}

// checkCount validates a non-negative integer stored in an INTEGER column.
func checkCount(v *ValidationError, field string, value int) {
	switch {
	case value < 0:
		v.Add(field, msgMinValue)
	case value > maxIntValue:
		v.Add(field, msgMaxValue)
	}
}

// ownerGone maps a write that lost its owning user to ErrUnauthenticated: the
// token was issued to an account that no longer exists.
func ownerGone(err error) error {
	if errors.Is(err, repositories.ErrMissingReference) {
		return ErrUnauthenticated
	}
	return err
}
