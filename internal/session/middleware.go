package session

import (
	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
	"storekeeper-backend/internal/users"
)

const (
	CookieName = "storekeeper_session"

	ctxUserKey = "current_user"
)

// Required はセッションクッキーを検証し、ユーザを context に積む。
func Required(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			rest.WriteError(c, rest.ErrUnauthorized("authentication required"))
			c.Abort()
			return
		}

		u, err := svc.Current(c.Request.Context(), token)
		if err != nil {
			rest.WriteError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser はミドルウェア通過後のハンドラから呼ぶ。
func CurrentUser(c *gin.Context) *users.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*users.User)
	return u
}
