package persistence

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrStorageUnavailable: If the store cannot be reached
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by its unique, case-sensitive username
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has that username
	// - ErrStorageUnavailable: If the store cannot be reached
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user and fills in the generated ID
	//
	// Possible errors:
	// - ErrDuplicateUsername: If the username is already taken
	// - ErrStorageUnavailable: If the store cannot be reached
	Create(ctx context.Context, user *entity.User) error

	// Update persists changed fields (multiplier, password digest)
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrStorageUnavailable: If the store cannot be reached
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user record. Ledger cleanup is the caller's
	// responsibility and must happen in the same transaction.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrStorageUnavailable: If the store cannot be reached
	Delete(ctx context.Context, id uint64) error

	// ListByGroupCode returns all members of a group ordered by ID ascending.
	// The order is load-bearing: it is the leaderboard tie-break.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	ListByGroupCode(ctx context.Context, groupCode string) ([]*entity.User, error)
}
