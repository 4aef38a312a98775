// Package validation provides request validation for the generation pipeline.
package validation

import "fmt"

// Error represents a request validation failure. It is always produced
// before any network call is attempted and maps to HTTP 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
