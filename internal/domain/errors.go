package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// event does not exist. Handlers map this to HTTP 404; the API client maps
// a 404 response back to it.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, dateEnd before dateStart).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
