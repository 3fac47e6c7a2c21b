package models

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies domain failures for HTTP status mapping.
type ErrorKind int

const (
	KindAuthMissing ErrorKind = iota
	KindAuthInvalid
	KindForbidden
	KindNotFound
	KindBadRequest
	KindQueryFailed
)

// DomainError is the single error currency between services and
// controllers. Dimension names the permission dimension that caused a
// forbidden outcome.
type DomainError struct {
	Kind      ErrorKind
	Dimension string
	Message   string
	Err       error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindAuthMissing:
		return http.StatusUnauthorized
	case KindAuthInvalid, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func AuthMissing(msg string) *DomainError { return &DomainError{Kind: KindAuthMissing, Message: msg} }

func AuthInvalid(msg string) *DomainError { return &DomainError{Kind: KindAuthInvalid, Message: msg} }

func Forbidden(dimension, msg string) *DomainError {
	return &DomainError{Kind: KindForbidden, Dimension: dimension, Message: msg}
}

func NotFound(msg string) *DomainError { return &DomainError{Kind: KindNotFound, Message: msg} }

func BadRequest(msg string) *DomainError { return &DomainError{Kind: KindBadRequest, Message: msg} }

func QueryFailed(msg string, err error) *DomainError {
	return &DomainError{Kind: KindQueryFailed, Message: msg, Err: err}
}
