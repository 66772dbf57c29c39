package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/auction-backend/internal/auction"
	"github.com/shinyyama/auction-backend/internal/reqctx"
	"github.com/shinyyama/auction-backend/internal/repository"
	"github.com/shinyyama/auction-backend/internal/service"
	"github.com/shinyyama/auction-backend/internal/storage"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeError maps a service error to the JSON envelope. what names the
// resource for not-found messages and the action for internal failures.
func writeError(c echo.Context, err error, what string) error {
	switch {
	case auction.IsValidation(err),
		errors.Is(err, service.ErrInvalidMessage),
		errors.Is(err, service.ErrSelfLike),
		errors.Is(err, storage.ErrUnsupportedKind),
		errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrTooLarge):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", what+" not found"))
	case errors.Is(err, service.ErrBanned):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "account is banned"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case auction.IsConflict(err),
		errors.Is(err, service.ErrBuyNowInFlight),
		errors.Is(err, repository.ErrConcurrentModification):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	}
	reqctx.Log(c.Request().Context()).WithError(err).WithField("path", c.Path()).Error("request failed")
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to process "+what))
}

func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func currentName(c echo.Context) string {
	name, _ := c.Get("name").(string)
	return name
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
}
