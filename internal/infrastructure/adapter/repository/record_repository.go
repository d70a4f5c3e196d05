package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRepository implements persistence.RecordRepository using GORM
type RecordRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRecordRepository creates a new RecordRepository instance
func NewRecordRepository(db *gorm.DB, logger coreport.Logger) *RecordRepository {
	return &RecordRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func recordModelToEntity(m *model.SavingRecord) *entity.SavingRecord {
	return &entity.SavingRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		DayNumber: m.DayNumber,
		Amount:    m.Amount,
		Note:      m.Note,
		Photo:     m.Photo,
		SavedOn:   m.SavedOn,
		CreatedAt: m.CreatedAt,
	}
}

func (r *RecordRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrRecordNotFound
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
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
}

// Upsert writes the (user, day) slot inside a database transaction. An
// existing row keeps its amount and day; only note, saved date and photo may
// change, and the photo only when a new reference arrives. The insert carries
// an ON CONFLICT clause on the composite unique index, so two concurrent
// first writes both succeed: the loser converges into the update branch at
// the database instead of surfacing a constraint error.
func (r *RecordRepository) Upsert(ctx context.Context, record *entity.SavingRecord) (*persistence.UpsertResult, error) {
	var upsert persistence.UpsertResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SavingRecord
		result := tx.Where("user_id = ? AND day_number = ?", record.UserID, record.DayNumber).
			First(&existing)

		if result.Error == nil {
			updates := map[string]interface{}{
				"note":     record.Note,
				"saved_on": record.SavedOn,
			}
			if record.Photo != "" && record.Photo != existing.Photo {
				upsert.ReplacedPhoto = existing.Photo
				updates["photo"] = record.Photo
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			upsert.RecordID = existing.ID
			return nil
		}

		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		// Amount and day number are deliberately absent from the conflict
		// assignments: whichever insert lands first fixes them for good.
		assignments := map[string]interface{}{
			"note":     record.Note,
			"saved_on": record.SavedOn,
		}
		if record.Photo != "" {
			assignments["photo"] = record.Photo
		}

		recordModel := model.SavingRecord{
			UserID:    record.UserID,
			DayNumber: record.DayNumber,
			Amount:    record.Amount,
			Note:      record.Note,
			Photo:     record.Photo,
			SavedOn:   record.SavedOn,
			CreatedAt: record.CreatedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_number"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(&recordModel).Error; err != nil {
			return err
		}
		record.ID = recordModel.ID
		upsert.RecordID = recordModel.ID
		upsert.Created = true
		return nil
	})

	if err != nil {
		return nil, r.handleDatabaseError("upserting saving record", err)
	}
	return &upsert, nil
}

// GetByUserAndDay retrieves a single ledger row
func (r *RecordRepository) GetByUserAndDay(ctx context.Context, userID uint64, dayNumber int) (*entity.SavingRecord, error) {
	var recordModel model.SavingRecord
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND day_number = ?", userID, dayNumber).
		First(&recordModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting saving record", result.Error)
	}
	return recordModelToEntity(&recordModel), nil
}

// DeleteByUserAndDay removes the slot and reports the photo reference the
// row carried. Deleting an empty slot returns no error.
func (r *RecordRepository) DeleteByUserAndDay(ctx context.Context, userID uint64, dayNumber int) (string, error) {
	removedPhoto := ""

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.SavingRecord
		result := tx.Where("user_id = ? AND day_number = ?", userID, dayNumber).
			First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		removedPhoto = existing.Photo
		return nil
	})

	if err != nil {
		return "", r.handleDatabaseError("deleting saving record", err)
	}
	return removedPhoto, nil
}

// ClearForUser removes every row of the user and reports the photo
// references the rows carried
func (r *RecordRepository) ClearForUser(ctx context.Context, userID uint64) ([]string, error) {
	var photos []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs []string
		result := tx.Model(&model.SavingRecord{}).
			Where("user_id = ? AND photo <> ''", userID).
			Pluck("photo", &refs)
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.SavingRecord{}).Error; err != nil {
			return err
		}
		photos = refs
		return nil
	})

	if err != nil {
		return nil, r.handleDatabaseError("clearing saving records", err)
	}
	return photos, nil
}

// ListForUser returns the user's rows ordered by day number ascending
func (r *RecordRepository) ListForUser(ctx context.Context, userID uint64) ([]*entity.SavingRecord, error) {
	var recordModels []model.SavingRecord
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_number ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing saving records", result.Error)
	}

	records := make([]*entity.SavingRecord, 0, len(recordModels))
	for i := range recordModels {
		records = append(records, recordModelToEntity(&recordModels[i]))
	}
	return records, nil
}
