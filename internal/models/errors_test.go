package models

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err    *DomainError
		status int
	}{
		{AuthMissing("no key"), http.StatusUnauthorized},
		{AuthInvalid("bad key"), http.StatusForbidden},
		{Forbidden("countries", "denied"), http.StatusForbidden},
		{NotFound("no data"), http.StatusNotFound},
		{BadRequest("bad limit"), http.StatusBadRequest},
		{QueryFailed("boom", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.err.HTTPStatus(), c.err.Message)
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	derr := QueryFailed("query execution failed", cause)
	assert.ErrorIs(t, derr, cause)
	assert.Contains(t, derr.Error(), "query execution failed")
}

func TestForbidden_CarriesDimension(t *testing.T) {
	derr := Forbidden("max_limit", "too many rows")
	assert.Equal(t, "max_limit", derr.Dimension)
	assert.Equal(t, KindForbidden, derr.Kind)
}
