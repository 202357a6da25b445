package axon

import (
	"fmt"
	"net/http"
)

// HttpError carries the status a handler wants to answer with. Adapters
// render it through ErrorPayload; any other error is left to the framework.
type HttpError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// WithDetails returns a copy of e carrying details
func (e *HttpError) WithDetails(details any) *HttpError {
	c := *e
	c.Details = details
	return &c
}

// NewHttpError builds an HttpError for any status code
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message}
}

func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message)
}

func ErrForbidden(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message)
}

func ErrNotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message)
}

func ErrConflict(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message)
}

func ErrUnprocessableEntity(message string) *HttpError {
	return NewHttpError(http.StatusUnprocessableEntity, message)
}

func ErrInternalServerError(message string) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message)
}
