// Package errs defines the HTTP error type handlers return when a request
// cannot be answered with a business-level envelope.
//
// The global error handler renders every HTTPError as
//
//	{ "status": false, "message": "..." }
//
// with the error's HTTP status code.
package errs

import (
	"fmt"
	"net/http"
)

const (
	MessageInvalidBody        = "Invalid request body."
	MessageRouteNotFound      = "Route not found."
	MessageServiceUnavailable = "Service unavailable."
	MessageBodyTooLarge       = "Request body too large."
	MessageInternal           = "Internal server error."
)

// HTTPError carries the status code and client-facing message. Err is the
// underlying cause; it is logged but never sent to the client.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string, err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Err: err}
}

func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{Status: http.StatusNotFound, Message: message}
}

// NewPayloadTooLargeError is returned when a body exceeds the configured limit.
func NewPayloadTooLargeError(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusRequestEntityTooLarge,
		Message: MessageBodyTooLarge,
		Err:     err,
	}
}

// NewServiceUnavailableError wraps a document store failure.
func NewServiceUnavailableError(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusServiceUnavailable,
		Message: MessageServiceUnavailable,
		Err:     err,
	}
}

func NewInternalServerError(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: MessageInternal,
		Err:     err,
	}
}
