// Package normalize converts raw generative API responses into validated
// internal records. Nothing downstream of this package inspects provider
// JSON again.
package normalize

import (
	"fmt"
	"strings"
)

// EmptyResponseError indicates the provider answered 2xx but the expected
// payload was absent from the response envelope.
type EmptyResponseError struct {
	Service string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s returned an empty response", e.Service)
}

// MalformedJSONError indicates the embedded payload was not parseable JSON.
type MalformedJSONError struct {
	Cause error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("provider returned invalid JSON: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}

// SchemaError indicates the embedded payload parsed but did not match the
// expected copy batch shape.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("provider response failed schema validation: %s", strings.Join(e.Violations, "; "))
}
