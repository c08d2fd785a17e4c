// Package handlers: stable error codes and the mapping from service errors
// to HTTP statuses.
//
// Status policy: unknown or ambiguous identifiers are 404, PIN failures are
// 401, and every other failure of a question operation is 400. Store
// failures therefore surface as 400 persistence_failed, and are logged at
// error level so they are not mistaken for client mistakes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/calibrated/internal/http/middleware"
	"github.com/tbourn/calibrated/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeAmbiguousID       = "ambiguous_id"
	ErrCodeValidationFailed  = "validation_failed"
	ErrCodeOutOfRange        = "out_of_range"
	ErrCodePinRequired       = "pin_required"
	ErrCodeInvalidPin        = "invalid_pin"
	ErrCodePersistenceFailed = "persistence_failed"
)

// failService writes the envelope for an error returned by the services.
func failService(c *gin.Context, err error) {
	var (
		ve *services.ValidationError
		oe *services.OutOfRangeError
		pe *services.PersistenceError
	)
	switch {
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "question not found")
	case errors.Is(err, services.ErrAmbiguous):
		fail(c, http.StatusNotFound, ErrCodeAmbiguousID, "ambiguous question id, use the full id")
	case errors.Is(err, services.ErrPinRequired):
		fail(c, http.StatusUnauthorized, ErrCodePinRequired, err.Error())
	case errors.Is(err, services.ErrInvalidPin):
		fail(c, http.StatusUnauthorized, ErrCodeInvalidPin, err.Error())
	case errors.As(err, &ve):
		failField(c, http.StatusBadRequest, ErrCodeValidationFailed, ve.Message, ve.Field)
	case errors.As(err, &oe):
		fail(c, http.StatusBadRequest, ErrCodeOutOfRange, oe.Error())
	case errors.As(err, &pe):
		middleware.LoggerFrom(c).Error().Err(pe.Err).Str("op", pe.Op).Msg("store failure")
		fail(c, http.StatusBadRequest, ErrCodePersistenceFailed, pe.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
