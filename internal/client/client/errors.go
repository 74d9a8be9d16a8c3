package client

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer from the game server. Error returns the
// server's detail message so it can be shown to the player as is.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

// Unwrap maps the status code onto the shared sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case e.StatusCode == http.StatusBadRequest, e.StatusCode == http.StatusUnprocessableEntity:
		return common.ErrValidation
	case e.StatusCode >= http.StatusInternalServerError:
		return common.ErrorInternal
	}
	return nil
}
