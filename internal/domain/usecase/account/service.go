package account

import (
	"context"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// maxCodeAttempts bounds the generate-then-check loop for invite codes.
// Collisions in an 8-character keyspace are rare but not impossible, so
// generation always verifies against the store before committing.
const maxCodeAttempts = 5

// Service implements identity and group business logic
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	groupRepo    persistence.GroupRepository
	sessionRepo  persistence.SessionRepository
	photoStore   persistence.PhotoStore
	hasher       coreport.PasswordHasher
	codes        coreport.CodeGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new account service instance
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	groupRepo persistence.GroupRepository,
	sessionRepo persistence.SessionRepository,
	photoStore persistence.PhotoStore,
	hasher coreport.PasswordHasher,
	codes coreport.CodeGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		groupRepo:    groupRepo,
		sessionRepo:  sessionRepo,
		photoStore:   photoStore,
		hasher:       hasher,
		codes:        codes,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.AccountUseCase = (*Service)(nil)

// removePhotos releases stored photo files after their records are gone.
// Called only after a successful commit: file removal cannot be rolled back.
func (s *Service) removePhotos(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.photoStore.Remove(ctx, ref); err != nil {
			s.logger.Warn("Failed to remove stored photo", map[string]any{
				"photo": ref,
				"error": err.Error(),
			})
		}
	}
}
