package handler

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// allowedPhotoExtensions lists the upload extensions accepted for deposit
// photos. Anything else is rejected before the use case runs.
var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LedgerHandler handles deposit write and delete HTTP requests
type LedgerHandler struct {
	ledger       usecase.LedgerUseCase
	maxPhotoSize int64 // bytes
	logger       coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger usecase.LedgerUseCase, maxPhotoSizeMB int, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:       ledger,
		maxPhotoSize: int64(maxPhotoSizeMB) * 1024 * 1024,
		logger:       logger,
	}
}

// Save handles POST /save. The deposit form arrives as multipart so an
// optional photo can ride along under the "photo" field.
func (h *LedgerHandler) Save(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var form dto.DepositForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	req := usecase.DepositRequest{
		DayNumber: form.DayNumber,
		Note:      form.Note,
		SavedOn:   form.SavedOn,
	}

	file, header, err := c.Request.FormFile("photo")
	if err == nil {
		defer file.Close()
		if msg := h.validatePhoto(header); msg != "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    badRequestCode,
				Message: msg,
			})
			return
		}
		req.Photo = file
		req.PhotoExt = strings.ToLower(filepath.Ext(header.Filename))
	}

	result, err := h.ledger.UpsertDeposit(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.DepositResponse{
		RecordID: result.RecordID,
		Created:  result.Created,
	})
}

// DeleteRecord handles POST /delete_record. Clearing an empty day slot
// succeeds without touching anything.
func (h *LedgerHandler) DeleteRecord(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.DeleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.ledger.DeleteDeposit(c.Request.Context(), user.ID, req.DayNumber); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// validatePhoto checks size and extension of an uploaded photo, returning a
// user-facing message when the file is unacceptable
func (h *LedgerHandler) validatePhoto(header *multipart.FileHeader) string {
	if h.maxPhotoSize > 0 && header.Size > h.maxPhotoSize {
		return "Photo exceeds the maximum allowed size"
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExtensions[ext] {
		return "Unsupported photo format"
	}
	return ""
}
