package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrDuplicateUsername.Error() != "username already taken" {
		t.Errorf("ErrDuplicateUsername has unexpected message: %s", ErrDuplicateUsername.Error())
	}
	if ErrInvalidDay.Error() != "day number must be between 1 and 365" {
		t.Errorf("ErrInvalidDay has unexpected message: %s", ErrInvalidDay.Error())
	}
	if ErrAuthFailure.Error() != "invalid username or password" {
		t.Errorf("ErrAuthFailure has unexpected message: %s", ErrAuthFailure.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"DuplicateUsername", ErrDuplicateUsername, 4001},
		{"InvalidGroupCode", ErrInvalidGroupCode, 4002},
		{"InvalidDay", ErrInvalidDay, 4003},
		{"InvalidMultiplier", ErrInvalidMultiplier, 4004},
		{"WrongOldPassword", ErrWrongOldPassword, 4005},
		{"ConstraintViolation", ErrConstraintViolation, 4006},
		{"AuthFailure", ErrAuthFailure, 4010},
		{"SessionNotFound", ErrSessionNotFound, 4011},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"GroupNotFound", ErrGroupNotFound, 4041},
		{"RecordNotFound", ErrRecordNotFound, 4042},
		{"StorageUnavailable", ErrStorageUnavailable, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidDay), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestDepositError(t *testing.T) {
	baseErr := ErrInvalidDay
	depErr := &DepositError{
		UserID:    42,
		DayNumber: 400,
		Reason:    "day out of range",
		Err:       baseErr,
	}

	expectedErrMsg := "deposit failed for user 42 day 400: day out of range - day number must be between 1 and 365"
	if depErr.Error() != expectedErrMsg {
		t.Errorf("DepositError.Error() = %s, want %s", depErr.Error(), expectedErrMsg)
	}

	if !errors.Is(depErr, ErrInvalidDay) {
		t.Error("DepositError should unwrap to ErrInvalidDay")
	}

	fields := depErr.LogFields()
	if fields["user_id"] != uint64(42) {
		t.Errorf("LogFields user_id = %v, want 42", fields["user_id"])
	}
	if fields["error_code"] != CodeInvalidDay {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInvalidDay)
	}
}

func TestRegistrationError(t *testing.T) {
	regErr := NewRegistrationError("alice", "abcd1234", ErrInvalidGroupCode)

	if !errors.Is(regErr, ErrInvalidGroupCode) {
		t.Error("RegistrationError should unwrap to ErrInvalidGroupCode")
	}

	var typed *RegistrationError
	if !errors.As(regErr, &typed) {
		t.Fatal("expected a *RegistrationError")
	}
	if typed.LogFields()["join_code"] != "abcd1234" {
		t.Errorf("LogFields join_code = %v, want abcd1234", typed.LogFields()["join_code"])
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsAuthFailure(fmt.Errorf("login: %w", ErrAuthFailure)) {
		t.Error("IsAuthFailure should match wrapped ErrAuthFailure")
	}
	if !IsDuplicateUsernameError(ErrDuplicateUsername) {
		t.Error("IsDuplicateUsernameError should match ErrDuplicateUsername")
	}
	if !IsNotFoundError(ErrGroupNotFound) {
		t.Error("IsNotFoundError should match ErrGroupNotFound")
	}
	if IsNotFoundError(ErrAuthFailure) {
		t.Error("IsNotFoundError should not match ErrAuthFailure")
	}
	if !IsStorageUnavailableError(fmt.Errorf("ping: %w", ErrStorageUnavailable)) {
		t.Error("IsStorageUnavailableError should match wrapped ErrStorageUnavailable")
	}
}
