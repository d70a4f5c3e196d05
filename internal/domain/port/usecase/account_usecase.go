package usecase

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// RegisterRequest carries the registration form fields. An empty JoinCode
// means "create a new group"; a non-empty one must resolve to an existing
// group or registration fails.
type RegisterRequest struct {
	Username   string
	Password   string
	JoinCode   string
	GroupName  string
	Multiplier int
}

// RegisterResult reports the created user and the group it landed in
type RegisterResult struct {
	UserID    uint64
	GroupCode string
	GroupName string
}

// AccountUseCase defines methods for identity and group operations
type AccountUseCase interface {
	// Register creates a user, creating or joining a group as requested
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)

	// Authenticate verifies credentials and returns the user on success.
	// Unknown username and wrong password both yield ErrAuthFailure.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)

	// ChangePassword verifies the old password and stores a digest of the new one
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error

	// RenameGroup renames the group the user belongs to
	RenameGroup(ctx context.Context, userID uint64, newName string) error

	// SetMultiplier changes the user's multiplier. When the value differs from
	// the current one, every ledger row of the user is cleared in the same
	// transaction before the field is updated.
	SetMultiplier(ctx context.Context, userID uint64, multiplier int) error

	// DeleteAccount removes the user's ledger, the user record and all of the
	// user's sessions in one transaction
	DeleteAccount(ctx context.Context, userID uint64) error
}
