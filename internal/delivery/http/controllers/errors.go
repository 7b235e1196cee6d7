package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/domain"
)

// writeDomainError maps a service error to the HTTP response envelope.
// Validation failures keep their specific message so the caller can correct
// the request; anything unrecognized is logged and reported as internal.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded, err.Error())
	case errors.Is(err, domain.ErrDineInMismatch):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDineInMismatch, err.Error())
	case errors.Is(err, domain.ErrEmptySelection):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeEmptySelection, err.Error())
	case errors.Is(err, domain.ErrInvalidSelection):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidSelection, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong, please try again later")
	}
}
