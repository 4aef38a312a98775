// Package server provides the HTTP REST API for the socialcopy service.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/socialcopy/internal/config"
	"github.com/jonathan/socialcopy/internal/gemini"
	"github.com/jonathan/socialcopy/internal/normalize"
	"github.com/jonathan/socialcopy/internal/validation"
)

// HTTPStatus maps pipeline errors onto response status codes: caller
// mistakes are 400, missing credentials 500, and anything the provider did
// wrong 502 (or the provider's own status when it answered with one).
func HTTPStatus(err error) int {
	var validationErr *validation.Error
	var missingKeyErr *config.MissingKeyError
	var serviceErr *gemini.ServiceError
	var emptyErr *normalize.EmptyResponseError
	var malformedErr *normalize.MalformedJSONError
	var schemaErr *normalize.SchemaError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &missingKeyErr):
		return http.StatusInternalServerError
	case errors.As(err, &serviceErr):
		if serviceErr.StatusCode >= 400 {
			return serviceErr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &emptyErr), errors.As(err, &malformedErr), errors.As(err, &schemaErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
