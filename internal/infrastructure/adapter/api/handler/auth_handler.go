package handler

import (
	"net/http"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	sessionUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/session"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// CookieSettings describes how the session cookie is issued
type CookieSettings struct {
	Name     string
	Secure   bool
	MaxAgeSe int
}

// AuthHandler handles account lifecycle and login HTTP requests
type AuthHandler struct {
	accounts usecase.AccountUseCase
	sessions *sessionUseCase.Manager
	cookie   CookieSettings
	logger   coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(
	accounts usecase.AccountUseCase,
	sessions *sessionUseCase.Manager,
	cookie CookieSettings,
	logger coreport.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

// Register handles POST /register. A successful registration also logs the
// user in so the client lands on the dashboard directly.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	multiplier := req.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	result, err := h.accounts.Register(c.Request.Context(), usecase.RegisterRequest{
		Username:   req.Username,
		Password:   req.Password,
		JoinCode:   req.GroupCode,
		GroupName:  req.GroupName,
		Multiplier: multiplier,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.issueSession(c, result.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID:    result.UserID,
		GroupCode: result.GroupCode,
		GroupName: result.GroupName,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID: user.ID,
		Token:  token,
	})
}

// Logout handles POST /logout. Only the presented session is revoked;
// other devices stay logged in.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.CurrentToken(c)
	if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	h.clearSessionCookie(c)

	c.Status(http.StatusNoContent)
}

// ChangePassword handles POST /change_password. The account service revokes
// every session on success, so the client has to log in again.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    badRequestCode,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	h.clearSessionCookie(c)

	c.Status(http.StatusNoContent)
}

// DeleteAccount handles POST /delete_account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}
	h.clearSessionCookie(c)

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) issueSession(c *gin.Context, userID uint64) error {
	token, err := h.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)
	return nil
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAgeSe, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
