package persistence

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// GroupRepository defines essential methods to interact with group data
type GroupRepository interface {
	// GetByCode retrieves a group by its invite code
	//
	// Possible errors:
	// - ErrGroupNotFound: If no group has that code
	// - ErrStorageUnavailable: If the store cannot be reached
	GetByCode(ctx context.Context, code string) (*entity.Group, error)

	// CodeExists reports whether a group with the given invite code exists.
	// Used by the generate-then-check loop during registration.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	CodeExists(ctx context.Context, code string) (bool, error)

	// Create persists a new group and fills in the generated ID
	//
	// Possible errors:
	// - ErrConstraintViolation: If the invite code collides with an existing one
	// - ErrStorageUnavailable: If the store cannot be reached
	Create(ctx context.Context, group *entity.Group) error

	// Rename updates the group display name. Last writer wins; renaming
	// is not safety-critical so no locking is applied.
	//
	// Possible errors:
	// - ErrGroupNotFound: If no group has that code
	// - ErrStorageUnavailable: If the store cannot be reached
	Rename(ctx context.Context, code, name string) error
}
