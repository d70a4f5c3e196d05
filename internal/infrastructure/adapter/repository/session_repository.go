package repository

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SessionRepository implements persistence.SessionRepository using GORM
type SessionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *gorm.DB, logger coreport.Logger) *SessionRepository {
	return &SessionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *SessionRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrSessionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Create stores a new session row
func (r *SessionRepository) Create(ctx context.Context, session *persistence.Session) error {
	sessionModel := model.Session{
		Token:     session.Token,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	result := r.db.WithContext(ctx).Create(&sessionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating session", result.Error)
	}
	return nil
}

// GetByToken retrieves a session by its token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*persistence.Session, error) {
	var sessionModel model.Session
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&sessionModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting session", result.Error)
	}
	return &persistence.Session{
		Token:     sessionModel.Token,
		UserID:    sessionModel.UserID,
		CreatedAt: sessionModel.CreatedAt,
		ExpiresAt: sessionModel.ExpiresAt,
	}, nil
}

// Delete removes a session row; unknown tokens are a no-op
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting session", result.Error)
	}
	return nil
}

// DeleteForUser removes every session row of the user
func (r *SessionRepository) DeleteForUser(ctx context.Context, userID uint64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting user sessions", result.Error)
	}
	return nil
}
