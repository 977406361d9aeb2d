package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call.
type Kind int

const (
	// Transport covers network errors and responses that cannot be decoded.
	Transport Kind = iota
	Conflict
	Unauthorized
	NotFound
	BadRequest
	Server
)

func (k Kind) String() string {
	switch k {
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not found"
	case BadRequest:
		return "bad request"
	case Server:
		return "server error"
	}
	return "transport failure"
}

// Error is returned for every failed call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func kindFor(status int) Kind {
	switch status {
	case http.StatusConflict:
		return Conflict
	case http.StatusUnauthorized:
		return Unauthorized
	case http.StatusNotFound:
		return NotFound
	case http.StatusBadRequest:
		return BadRequest
	}
	if status >= 500 {
		return Server
	}
	return Transport
}

func transportError(err error) *Error {
	return &Error{Kind: Transport, Err: err}
}
