// Package api holds the shared HTTP envelope and the mapping from the
// lifecycle error taxonomy onto response codes.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/lifecycle"
)

// Envelope is the uniform response shape for all API endpoints.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// TransitionBody is the request body for lifecycle transition endpoints.
type TransitionBody struct {
	Reason           string `json:"reason"`
	ConfirmationText string `json:"confirmation_text"`
	ExpectedVersion  int    `json:"expected_version,omitempty"`
}

func Success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Status: "success", Data: data})
}

// Error writes the error envelope with the HTTP status implied by the error's
// place in the taxonomy. The message is whatever the error exposes, which for
// authorization and validation failures is deliberately generic.
func Error(c echo.Context, err error) error {
	return c.JSON(HTTPStatus(err), Envelope{Status: "error", Message: err.Error()})
}

// HTTPStatus maps a lifecycle error to its response code. Unrecognized errors
// are treated as internal failures.
func HTTPStatus(err error) int {
	var (
		notFound    *lifecycle.NotFoundError
		authz       *lifecycle.AuthorizationError
		validation  *lifecycle.ValidationError
		conflict    *lifecycle.ConflictError
		persistence *lifecycle.PersistenceError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authz):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &persistence):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
