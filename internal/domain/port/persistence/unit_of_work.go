package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories in one atomic transaction. The cascades that need it are the
// multiplier change (clear ledger + set field) and account deletion
// (clear ledger + delete user + drop sessions): neither may be observable in
// a partially-applied state by a concurrent read.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetGroupRepository returns a group repository bound to the current transaction
	GetGroupRepository(ctx context.Context) GroupRepository

	// GetRecordRepository returns a ledger repository bound to the current transaction
	GetRecordRepository(ctx context.Context) RecordRepository

	// GetSessionRepository returns a session repository bound to the current transaction
	GetSessionRepository(ctx context.Context) SessionRepository
}
