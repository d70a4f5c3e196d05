package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// badRequestCode is the error code attached to malformed request payloads
// rejected before they reach a use case.
var badRequestCode = domainerr.ErrorCode(domainerr.ErrInvalidRequest)

// respondError translates a domain error into the HTTP response. Messages
// stay generic for authentication failures so the response body leaks
// nothing about which part of the credentials was wrong.
func respondError(c *gin.Context, err error) {
	status, message := statusForError(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

func statusForError(err error) (int, string) {
	switch {
	case domainerr.IsAuthFailure(err):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domainerr.ErrSessionNotFound):
		return http.StatusUnauthorized, "Authentication required"
	case domainerr.IsDuplicateUsernameError(err):
		return http.StatusConflict, "Username is already taken"
	case errors.Is(err, domainerr.ErrConstraintViolation):
		return http.StatusConflict, "Conflicting write, try again"
	case errors.Is(err, domainerr.ErrInvalidGroupCode):
		return http.StatusBadRequest, "Unknown group code"
	case errors.Is(err, domainerr.ErrInvalidDay):
		return http.StatusBadRequest, "Day number must be between 1 and 365"
	case errors.Is(err, domainerr.ErrInvalidMultiplier):
		return http.StatusBadRequest, "Multiplier must be a positive integer"
	case errors.Is(err, domainerr.ErrInvalidUsername):
		return http.StatusBadRequest, "Username is required"
	case errors.Is(err, domainerr.ErrWrongOldPassword):
		return http.StatusBadRequest, "Current password is incorrect"
	case errors.Is(err, domainerr.ErrInvalidUserID):
		return http.StatusBadRequest, "Invalid user ID"
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domainerr.ErrGroupCodeExhausted):
		return http.StatusServiceUnavailable, "Could not allocate a group code, try again"
	case domainerr.IsStorageUnavailableError(err):
		return http.StatusServiceUnavailable, "Storage temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
