package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// GroupRepository implements persistence.GroupRepository using GORM
type GroupRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewGroupRepository creates a new GroupRepository instance
func NewGroupRepository(db *gorm.DB, logger coreport.Logger) *GroupRepository {
	return &GroupRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *GroupRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrGroupNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrStorageUnavailable, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// GetByCode retrieves a group by its invite code
func (r *GroupRepository) GetByCode(ctx context.Context, code string) (*entity.Group, error) {
	var groupModel model.Group
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&groupModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting group", result.Error)
	}
	return &entity.Group{
		ID:   groupModel.ID,
		Code: groupModel.Code,
		Name: groupModel.Name,
	}, nil
}

// CodeExists reports whether an invite code is already taken
func (r *GroupRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Group{}).
		Where("code = ?", code).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking group code", result.Error)
	}
	return count > 0, nil
}

// Create creates a new group and writes the generated ID back to the entity
func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) error {
	r.logger.Debug("Creating new group", map[string]any{
		"group_code": group.Code,
	})

	groupModel := model.Group{
		Code: group.Code,
		Name: group.Name,
	}

	result := r.db.WithContext(ctx).Create(&groupModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating group", result.Error)
	}

	group.ID = groupModel.ID
	return nil
}

// Rename updates the group's display name
func (r *GroupRepository) Rename(ctx context.Context, code, name string) error {
	result := r.db.WithContext(ctx).Model(&model.Group{}).
		Where("code = ?", code).
		Update("name", name)
	if result.Error != nil {
		return r.handleDatabaseError("renaming group", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrGroupNotFound
	}
	return nil
}
