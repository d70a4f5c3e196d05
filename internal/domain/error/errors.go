package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeDuplicateUsername   = 4001
	CodeInvalidGroupCode    = 4002
	CodeInvalidDay          = 4003
	CodeInvalidMultiplier   = 4004
	CodeWrongOldPassword    = 4005
	CodeConstraintViolation = 4006
	CodeAuthFailure         = 4010
	CodeSessionNotFound     = 4011
	CodeUserNotFound        = 4040
	CodeGroupNotFound       = 4041
	CodeRecordNotFound      = 4042

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorageUnavailable = 5030
)

// Base error types
var (
	// ErrInvalidRequest is returned when a request payload cannot be parsed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDuplicateUsername is returned when registering with a username that is already taken
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidGroupCode is returned when a join code does not resolve to an existing group
	ErrInvalidGroupCode = errors.New("invalid group invite code")

	// ErrAuthFailure is returned for both unknown username and wrong password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrAuthFailure = errors.New("invalid username or password")

	// ErrWrongOldPassword is returned when a password change supplies the wrong current password
	ErrWrongOldPassword = errors.New("old password does not match")

	// ErrInvalidDay is returned when a deposit targets a day outside [1, 365]
	ErrInvalidDay = errors.New("day number must be between 1 and 365")

	// ErrInvalidMultiplier is returned when the multiplier is not a positive integer
	ErrInvalidMultiplier = errors.New("multiplier must be a positive integer")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidUsername is returned when the username is empty
	ErrInvalidUsername = errors.New("username cannot be empty")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound is returned when the requested group doesn't exist
	ErrGroupNotFound = errors.New("group not found")

	// ErrRecordNotFound is returned when the requested saving record doesn't exist
	ErrRecordNotFound = errors.New("saving record not found")

	// ErrSessionNotFound is returned when a session token is unknown or expired
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrGroupCodeExhausted is returned when invite code generation keeps colliding
	ErrGroupCodeExhausted = errors.New("could not generate a unique group invite code")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrStorageUnavailable is returned when the persistent store cannot be reached
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDuplicateUsername):
		return CodeDuplicateUsername
	case errors.Is(err, ErrInvalidGroupCode):
		return CodeInvalidGroupCode
	case errors.Is(err, ErrInvalidDay):
		return CodeInvalidDay
	case errors.Is(err, ErrInvalidMultiplier):
		return CodeInvalidMultiplier
	case errors.Is(err, ErrWrongOldPassword):
		return CodeWrongOldPassword
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrAuthFailure):
		return CodeAuthFailure
	case errors.Is(err, ErrSessionNotFound):
		return CodeSessionNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrGroupNotFound):
		return CodeGroupNotFound
	case errors.Is(err, ErrRecordNotFound):
		return CodeRecordNotFound
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return CodeInternalServer
	}
}

// DepositError represents an error raised while writing a ledger slot
type DepositError struct {
	UserID    uint64
	DayNumber int
	Reason    string
	Err       error
}

// Error implements the error interface for DepositError
func (e *DepositError) Error() string {
	return fmt.Sprintf("deposit failed for user %d day %d: %s - %v",
		e.UserID, e.DayNumber, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *DepositError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *DepositError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "deposit_error",
		"user_id":    e.UserID,
		"day_number": e.DayNumber,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewDepositError creates a detailed deposit error
func NewDepositError(userID uint64, dayNumber int, reason string, err error) error {
	return &DepositError{
		UserID:    userID,
		DayNumber: dayNumber,
		Reason:    reason,
		Err:       err,
	}
}

// RegistrationError provides detailed information about a failed registration
type RegistrationError struct {
	Username string
	JoinCode string
	Err      error
}

// Error implements the error interface
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed for username %q: %v", e.Username, e.Err)
}

// Unwrap returns the underlying error
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *RegistrationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "registration_error",
		"username":   e.Username,
		"join_code":  e.JoinCode,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewRegistrationError creates a detailed registration error
func NewRegistrationError(username, joinCode string, err error) error {
	return &RegistrationError{
		Username: username,
		JoinCode: joinCode,
		Err:      err,
	}
}

// IsAuthFailure checks if the error is an authentication failure
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailure)
}

// IsDuplicateUsernameError checks if the error is a duplicate username error
func IsDuplicateUsernameError(err error) bool {
	return errors.Is(err, ErrDuplicateUsername)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsStorageUnavailableError checks if the error indicates the store is unreachable
func IsStorageUnavailableError(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
