package application

import (
	"errors"
	"sort"

	"github.com/example/room-booking/internal/booking"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrNotLoaded is returned when a service is used before its state was loaded.
	ErrNotLoaded = errors.New("application: state not loaded")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if reason := v.Reason(); reason != "" {
		return "validation failed: " + reason
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// Reason returns a single human readable message, taken from the first field
// in lexical order.
func (v *ValidationError) Reason() string {
	if !v.HasErrors() {
		return ""
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return v.FieldErrors[fields[0]]
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// merge copies entries from another validation error into the receiver.
func (v *ValidationError) merge(other *ValidationError) {
	if other == nil || len(other.FieldErrors) == 0 {
		return
	}
	for field, msg := range other.FieldErrors {
		v.add(field, msg)
	}
}

// rejection turns a rejected decision into a ValidationError. Accepted
// decisions yield nil.
func rejection(d booking.Decision) *ValidationError {
	if d.Accepted {
		return nil
	}
	field := d.Field
	if field == "" {
		field = "request"
	}
	vErr := &ValidationError{}
	vErr.add(field, d.Reason)
	return vErr
}
