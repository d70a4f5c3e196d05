package handler

import (
	"net/http"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// GroupHandler handles group and plan settings HTTP requests
type GroupHandler struct {
	accounts usecase.AccountUseCase
	logger   coreport.Logger
}

// NewGroupHandler creates a new group handler instance
func NewGroupHandler(accounts usecase.AccountUseCase, logger coreport.Logger) *GroupHandler {
	return &GroupHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// UpdateGroupName handles POST /update_group_name. An empty name leaves the
// current name untouched.
func (h *GroupHandler) UpdateGroupName(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.UpdateGroupNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.accounts.RenameGroup(c.Request.Context(), user.ID, req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateMultiplier handles POST /update_multiplier. Changing the value wipes
// the user's ledger, so the client is expected to confirm first.
func (h *GroupHandler) UpdateMultiplier(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.UpdateMultiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.accounts.SetMultiplier(c.Request.Context(), user.ID, req.Multiplier); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
