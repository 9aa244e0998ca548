package works

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
	"storekeeper-backend/internal/session"
)

// クローズ操作は「誰が締めたか」を記録するため汎用CRUDに乗らない。
type Handler struct{ svc *Service }

func (h *Handler) CloseOutbound(c *gin.Context) {
	h.close(c, h.svc.CloseOutbound)
}

func (h *Handler) CloseReturned(c *gin.Context) {
	h.close(c, h.svc.CloseReturned)
}

func (h *Handler) close(c *gin.Context, fn func(ctx context.Context, id, userID uint64) (*WorkResponse, error)) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		rest.WriteError(c, rest.ErrNotFound("not found"))
		return
	}

	u := session.CurrentUser(c)
	if u == nil {
		rest.WriteError(c, rest.ErrUnauthorized("authentication required"))
		return
	}

	out, err := fn(c.Request.Context(), id, u.ID)
	if err != nil {
		rest.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
