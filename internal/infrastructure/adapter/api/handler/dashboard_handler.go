package handler

import (
	"net/http"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// PhotoResolver maps a stored photo reference to a local file path
type PhotoResolver interface {
	Path(reference string) (string, error)
}

// DashboardHandler handles the aggregated read views
type DashboardHandler struct {
	dashboards usecase.DashboardUseCase
	photos     PhotoResolver
	logger     coreport.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(dashboards usecase.DashboardUseCase, photos PhotoResolver, logger coreport.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboards: dashboards,
		photos:     photos,
		logger:     logger,
	}
}

// GetData handles GET /api/data, returning the full dashboard payload for
// the authenticated user in one response
func (h *DashboardHandler) GetData(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	dashboard, err := h.dashboards.BuildDashboard(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ServePhoto handles GET /photos/:name. References never contain path
// separators, so the resolver rejects anything that tries to escape the
// photo directory.
func (h *DashboardHandler) ServePhoto(c *gin.Context) {
	name := c.Param("name")
	path, err := h.photos.Path(name)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Unknown photo",
		})
		return
	}

	c.File(path)
}
