package domain

import "errors"

var (
	// ErrMalformedJSON signals a JSON request body that could not be decoded.
	ErrMalformedJSON = errors.New("malformed json body")
	// ErrJSONBodyTooLarge signals a JSON request body above the configured limit.
	ErrJSONBodyTooLarge = errors.New("json body too large")
	// ErrAuthUnavailable signals that no authentication module is mounted.
	ErrAuthUnavailable = errors.New("authentication routes not available")
)
