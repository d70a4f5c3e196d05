package ledger

import (
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// Service implements ledger business logic
type Service struct {
	userRepo     persistence.UserRepository
	recordRepo   persistence.RecordRepository
	photoStore   persistence.PhotoStore
	codes        coreport.CodeGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new ledger service instance
func NewService(
	userRepo persistence.UserRepository,
	recordRepo persistence.RecordRepository,
	photoStore persistence.PhotoStore,
	codes coreport.CodeGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		recordRepo:   recordRepo,
		photoStore:   photoStore,
		codes:        codes,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.LedgerUseCase = (*Service)(nil)
