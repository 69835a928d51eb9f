// Package validator implements simple field-level validation with one
// message per field. Insertion order is preserved so callers can surface
// the first failing field deterministically.
package validator

import (
	"fmt"
	"regexp"
)

// FieldError is a validation failure naming the first field that did not
// pass. It is what callers surface to the user.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// EmailRX is a pragmatic email check, not a full RFC 5322 parser.
var EmailRX = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Validator struct {
	Errors map[string]string
	order  []string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError records a message for key. Only the first message per key is kept.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
		v.order = append(v.order, key)
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// First returns the earliest recorded field and message, or empty strings
// when validation passed.
func (v *Validator) First() (field, message string) {
	if len(v.order) == 0 {
		return "", ""
	}
	return v.order[0], v.Errors[v.order[0]]
}

// FirstError returns the first failure as a *FieldError, or nil when
// validation passed.
func (v *Validator) FirstError() error {
	if v.IsValid() {
		return nil
	}
	field, message := v.First()
	return &FieldError{Field: field, Message: message}
}

func (v *Validator) IsMatch(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
