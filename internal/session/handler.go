package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
	"storekeeper-backend/internal/users"
)

type Handler struct {
	svc    *Service
	secure bool
	maxAge int
}

// POST/DELETE はログイン前でも叩けるため public 側、GET は認証必須。
func RegisterRoutes(public gin.IRoutes, protected gin.IRoutes, svc *Service, secureCookie bool) {
	h := &Handler{svc: svc, secure: secureCookie, maxAge: int(svc.ttl.Seconds())}
	public.POST("/sessions", h.Login)
	public.DELETE("/sessions", h.Logout)
	protected.GET("/sessions", h.Current)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() *rest.Error {
	return rest.Rules{
		"username": {rest.Required(r.Username)},
		"password": {rest.Required(r.Password)},
	}.Validate()
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.WriteError(c, rest.ErrValidation("malformed request body", nil))
		return
	}
	if err := req.Validate(); err != nil {
		rest.WriteError(c, err)
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		rest.WriteError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, h.maxAge, "/", "", h.secure, true)
	c.JSON(http.StatusCreated, users.ToResponse(u))
}

func (h *Handler) Current(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		rest.WriteError(c, rest.ErrUnauthorized("authentication required"))
		return
	}
	c.JSON(http.StatusOK, users.ToResponse(u))
}

// ログアウトは冪等。クッキーが無くても成功扱い。
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		if err := h.svc.Logout(c.Request.Context(), token); err != nil {
			rest.WriteError(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}
