package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrServer       = errors.New("internal server error")
	ErrRequest      = errors.New("request failed")
)

// APIError is a non-2xx response from an authenticated call.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func statusError(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrServer
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrRequest
	}
}

func statusMessage(code int, statusText string) string {
	switch code {
	case http.StatusForbidden:
		return "Access forbidden. Only teachers can perform this action."
	case http.StatusUnauthorized:
		return "Unauthorized. Please log in again."
	case http.StatusNotFound:
		return "Resource not found."
	case http.StatusInternalServerError:
		return "Internal server error."
	}
	if statusText == "" {
		return "Unknown error"
	}
	return statusText
}
