package routes

import (
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	sessionUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/session"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/handler"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	sessions *sessionUseCase.Manager,
	cookieName string,
	authHandler *handler.AuthHandler,
	ledgerHandler *handler.LedgerHandler,
	groupHandler *handler.GroupHandler,
	dashboardHandler *handler.DashboardHandler,
	servePhotos bool,
) {
	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Everything else requires a live session
	authed := router.Group("/", middleware.SessionAuth(sessions, cookieName))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.POST("/change_password", authHandler.ChangePassword)
		authed.POST("/delete_account", authHandler.DeleteAccount)

		authed.POST("/save", ledgerHandler.Save)
		authed.POST("/delete_record", ledgerHandler.DeleteRecord)

		authed.POST("/update_group_name", groupHandler.UpdateGroupName)
		authed.POST("/update_multiplier", groupHandler.UpdateMultiplier)

		authed.GET("/api/data", dashboardHandler.GetData)

		if servePhotos {
			authed.GET("/photos/:name", dashboardHandler.ServePhoto)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
