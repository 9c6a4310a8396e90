package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error response from the TaskMaster API. Detail carries the
// server-provided message when one was present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

// IsAuth reports whether err is a credential rejection (401).
func IsAuth(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

// IsValidation reports whether err is a payload rejection (400 or 422).
func IsValidation(err error) bool {
	return statusIs(err, http.StatusBadRequest) || statusIs(err, http.StatusUnprocessableEntity)
}

// IsConflict reports whether err is a stale-version rejection (409).
func IsConflict(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsNotFound reports whether err is a missing-resource rejection (404).
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// Detail returns the server-provided error detail, or fallback when err is
// not an API error or carried no detail.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func statusIs(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
