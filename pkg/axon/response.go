package axon

import (
	"errors"
	"net/http"
)

// Response lets a handler choose the status code of what it returns.
//
// Example usage:
//
//	func (c *UserController) Create(user CreateUser) (*axon.Response, error) {
//		created, err := c.users.Create(user)
//		if err != nil {
//			return nil, err
//		}
//		return axon.Created(created), nil
//	}
type Response struct {
	// StatusCode is the HTTP status code to return (e.g., 200, 201, 404, 500)
	StatusCode int `json:"-"`

	// Body is written according to the same rules as a plain return value
	Body interface{} `json:"body,omitempty"`
}

// NewResponse creates a new Response with the specified status code and body
func NewResponse(statusCode int, body interface{}) *Response {
	return &Response{
		StatusCode: statusCode,
		Body:       body,
	}
}

// OK creates a 200 OK response with the given body
func OK(body interface{}) *Response {
	return NewResponse(http.StatusOK, body)
}

// Created creates a 201 Created response with the given body
func Created(body interface{}) *Response {
	return NewResponse(http.StatusCreated, body)
}

// NoContent creates a 204 No Content response
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, nil)
}

// BadRequest creates a 400 Bad Request response with the given error message
func BadRequest(message string) *Response {
	return NewResponse(http.StatusBadRequest, map[string]string{"error": message})
}

// NotFound creates a 404 Not Found response with the given error message
func NotFound(message string) *Response {
	return NewResponse(http.StatusNotFound, map[string]string{"error": message})
}

// InternalServerError creates a 500 Internal Server Error response with the given error message
func InternalServerError(message string) *Response {
	return NewResponse(http.StatusInternalServerError, map[string]string{"error": message})
}

// PayloadKind says how an adapter writes a payload body
type PayloadKind int

const (
	PayloadEmpty PayloadKind = iota
	PayloadText
	PayloadBytes
	PayloadJSON
)

// Payload is a sent value reduced to what an adapter writes
type Payload struct {
	Status int
	Kind   PayloadKind
	Body   any
}

// PayloadFor applies the send rules to a handler's return value: a Response
// or HttpError carries its own status, a string is text, a byte slice is an
// octet stream, nil is an empty 200 and anything else is JSON.
func PayloadFor(value any) Payload {
	switch v := value.(type) {
	case *Response:
		if v == nil {
			return Payload{Status: http.StatusOK, Kind: PayloadEmpty}
		}
		return withStatus(PayloadFor(v.Body), v.StatusCode)
	case Response:
		return withStatus(PayloadFor(v.Body), v.StatusCode)
	case *HttpError:
		if v == nil {
			return Payload{Status: http.StatusOK, Kind: PayloadEmpty}
		}
		return Payload{Status: v.StatusCode, Kind: PayloadJSON, Body: v}
	case nil:
		return Payload{Status: http.StatusOK, Kind: PayloadEmpty}
	case string:
		return Payload{Status: http.StatusOK, Kind: PayloadText, Body: v}
	case []byte:
		return Payload{Status: http.StatusOK, Kind: PayloadBytes, Body: v}
	}
	return Payload{Status: http.StatusOK, Kind: PayloadJSON, Body: value}
}

// ErrorPayload renders err when it is, or wraps, an HttpError
func ErrorPayload(err error) (Payload, bool) {
	var httpErr *HttpError
	if !errors.As(err, &httpErr) {
		return Payload{}, false
	}
	return PayloadFor(httpErr), true
}

func withStatus(p Payload, status int) Payload {
	if status != 0 {
		p.Status = status
	}
	return p
}
