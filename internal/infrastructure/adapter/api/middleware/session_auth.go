package middleware

import (
	"net/http"
	"strings"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	domainerr "github.com/chiahui-lin/savings365/internal/domain/error"
	sessionUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/session"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Keys under which the resolved session is stored on the gin context
const (
	ContextUserKey  = "auth_user"
	ContextTokenKey = "auth_token"
)

// SessionAuth resolves the session token from the request and attaches the
// user to the context. Requests without a valid session are rejected with
// 401 before the handler runs.
func SessionAuth(sessions *sessionUseCase.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the user attached by SessionAuth
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

// CurrentToken returns the session token attached by SessionAuth
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}

// extractToken reads the session cookie, falling back to a bearer token for
// non-browser clients
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrSessionNotFound),
		Message: "Authentication required",
	})
}
