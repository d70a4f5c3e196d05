package ledger

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// UpsertDeposit writes the (user, day) slot. The first write fixes the amount
// at day * multiplier with the multiplier read at write time; repeat writes
// only update note, date and photo. A photo replaced on update is removed
// from storage once the row change is durable.
func (s *Service) UpsertDeposit(ctx context.Context, userID uint64, req usecase.DepositRequest) (*usecase.DepositResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := entity.ValidateDayNumber(req.DayNumber); err != nil {
		return nil, errs.NewDepositError(userID, req.DayNumber, "day out of range", err)
	}

	// Multiplier is read at write time, not stored redundantly
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	photoRef := ""
	if req.Photo != nil {
		name := s.codes.PhotoName(req.PhotoExt)
		photoRef, err = s.photoStore.Save(ctx, name, req.Photo)
		if err != nil {
			return nil, errs.NewDepositError(userID, req.DayNumber, "storing photo", err)
		}
	}

	savedOn := entity.NormalizeSavedOn(req.SavedOn, s.timeProvider.Now())
	record, err := entity.NewSavingRecord(userID, req.DayNumber, user.Multiplier, req.Note, photoRef, savedOn, s.timeProvider)
	if err != nil {
		s.discardPhoto(ctx, photoRef)
		return nil, err
	}

	result, err := s.recordRepo.Upsert(ctx, record)
	if err != nil {
		// The uploaded file must not outlive a failed row write
		s.discardPhoto(ctx, photoRef)
		return nil, err
	}

	// An update that brought a new photo supersedes the old stored file
	if photoRef != "" && result.ReplacedPhoto != "" {
		s.discardPhoto(ctx, result.ReplacedPhoto)
	}

	s.logger.Info("Deposit recorded", map[string]any{
		"user_id":    userID,
		"day_number": req.DayNumber,
		"amount":     record.Amount,
		"created":    result.Created,
		"has_photo":  photoRef != "",
	})

	return &usecase.DepositResult{
		RecordID: result.RecordID,
		Created:  result.Created,
	}, nil
}

// discardPhoto removes a stored photo, logging instead of failing: photo
// cleanup never decides the outcome of the deposit itself.
func (s *Service) discardPhoto(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.photoStore.Remove(ctx, ref); err != nil {
		s.logger.Warn("Failed to remove stored photo", map[string]any{
			"photo": ref,
			"error": err.Error(),
		})
	}
}
