package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ===== Generic nested resource view =====
// 親IDの下にだけ存在する子リソース（work items / acquisition items 等）。
// 親の解決はサービス側の責務：親が無ければ子に触れる前に NOT_FOUND を返すこと。

type NestedService[E any, C any, U any] interface {
	List(ctx context.Context, parentID uint64) ([]E, error)
	Get(ctx context.Context, parentID, id uint64) (*E, error)
	Create(ctx context.Context, parentID uint64, req C) (*E, error)
	Update(ctx context.Context, parentID, id uint64, req U) (*E, error)
	Delete(ctx context.Context, parentID, id uint64) error
}

// RegisterNested は /{parent}/:id/{child} と /{parent}/:id/{child}/:child_id を張る。
// 親リソース側の Register と同じ :id 名を使うこと（ginの制約）。
func RegisterNested[E any, C any, U any](r gin.IRoutes, parent, child string, svc NestedService[E, C, U]) {
	base := "/" + parent + "/:id/" + child

	r.GET(base, func(c *gin.Context) {
		parentID, ok := paramID(c, "id")
		if !ok {
			return
		}
		items, err := svc.List(c.Request.Context(), parentID)
		if err != nil {
			WriteError(c, err)
			return
		}
		if items == nil {
			items = []E{}
		}
		c.JSON(http.StatusOK, items)
	})

	r.POST(base, func(c *gin.Context) {
		parentID, ok := paramID(c, "id")
		if !ok {
			return
		}
		req, ok := bindJSON[C](c)
		if !ok {
			return
		}
		out, err := svc.Create(c.Request.Context(), parentID, req)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.Header("Location", "/"+parent+"/"+strconv.FormatUint(parentID, 10)+"/"+child+"/"+formatID(out))
		c.JSON(http.StatusCreated, out)
	})

	r.GET(base+"/:child_id", func(c *gin.Context) {
		parentID, ok := paramID(c, "id")
		if !ok {
			return
		}
		id, ok := paramID(c, "child_id")
		if !ok {
			return
		}
		out, err := svc.Get(c.Request.Context(), parentID, id)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.PUT(base+"/:child_id", func(c *gin.Context) {
		parentID, ok := paramID(c, "id")
		if !ok {
			return
		}
		id, ok := paramID(c, "child_id")
		if !ok {
			return
		}
		req, ok := bindJSON[U](c)
		if !ok {
			return
		}
		out, err := svc.Update(c.Request.Context(), parentID, id, req)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.DELETE(base+"/:child_id", func(c *gin.Context) {
		parentID, ok := paramID(c, "id")
		if !ok {
			return
		}
		id, ok := paramID(c, "child_id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), parentID, id); err != nil {
			WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
