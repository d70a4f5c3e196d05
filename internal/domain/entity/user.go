package entity

import (
	"time"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
)

// DefaultMultiplier is the multiplier assigned when none is chosen at registration
const DefaultMultiplier = 1

// User represents a registered member of a savings group
type User struct {
	ID             uint64    // Unique identifier for the user
	Username       string    // Unique, case-sensitive login name
	PasswordDigest string    // Opaque digest produced by the PasswordHasher port
	GroupCode      string    // Invite code of the group this user belongs to
	Multiplier     int       // Positive scale factor applied to every day amount
	CreatedAt      time.Time // When the user was created
	UpdatedAt      time.Time // When the user was last updated
}

// NewUser creates a new user with a hashed password digest
func NewUser(username, passwordDigest, groupCode string, multiplier int, timeProvider coreport.TimeProvider) (*User, error) {
	if username == "" {
		return nil, errs.ErrInvalidUsername
	}
	if err := ValidateMultiplier(multiplier); err != nil {
		return nil, err
	}
	if err := ValidateGroupCode(groupCode); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		Username:       username,
		PasswordDigest: passwordDigest,
		GroupCode:      groupCode,
		Multiplier:     multiplier,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// SetMultiplier updates the multiplier field only. The caller is responsible
// for clearing the user's ledger in the same transaction when the value changes.
func (u *User) SetMultiplier(multiplier int, timeProvider coreport.TimeProvider) error {
	if err := ValidateMultiplier(multiplier); err != nil {
		return err
	}
	u.Multiplier = multiplier
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// SetPasswordDigest replaces the stored digest
func (u *User) SetPasswordDigest(digest string, timeProvider coreport.TimeProvider) {
	u.PasswordDigest = digest
	u.UpdatedAt = timeProvider.Now()
}

// Target returns the user's annual savings target
func (u *User) Target() int64 {
	return AnnualBase * int64(u.Multiplier)
}

// ValidateMultiplier checks that a multiplier is a positive integer.
// The original registration form accepted a free-text "custom" multiplier
// without this guard; the domain enforces it everywhere.
func ValidateMultiplier(multiplier int) error {
	if multiplier < 1 {
		return errs.ErrInvalidMultiplier
	}
	return nil
}
