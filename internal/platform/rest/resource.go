package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ===== Generic resource view =====
// 各エンティティの list/item ハンドラはここで一度だけ実装し、
// リソース毎にサービスを差し込んで使い回す。

// リクエストDTOが実装していれば bind 直後に評価される。
type Validator interface {
	Validate() *Error
}

// CRUDサービスの共通契約。E: 読み出し形、C: 作成要求、U: 部分更新要求。
type Service[E any, C any, U any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id uint64) (*E, error)
	Create(ctx context.Context, req C) (*E, error)
	Update(ctx context.Context, id uint64, req U) (*E, error)
	Delete(ctx context.Context, id uint64) error
}

// Register は /{path} と /{path}/:id の5ルートを張る。
func Register[E any, C any, U any](r gin.IRoutes, path string, svc Service[E, C, U]) {
	r.GET("/"+path, func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			WriteError(c, err)
			return
		}
		if items == nil {
			items = []E{}
		}
		c.JSON(http.StatusOK, items)
	})

	r.POST("/"+path, func(c *gin.Context) {
		req, ok := bindJSON[C](c)
		if !ok {
			return
		}
		out, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.Header("Location", "/"+path+"/"+formatID(out))
		c.JSON(http.StatusCreated, out)
	})

	r.GET("/"+path+"/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		out, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.PUT("/"+path+"/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		req, ok := bindJSON[U](c)
		if !ok {
			return
		}
		out, err := svc.Update(c.Request.Context(), id, req)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.DELETE("/"+path+"/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// bindJSON はJSONデコードと（実装されていれば）ルール表の評価を行う。
// デコード失敗も型違い・欠落として422で返す。
func bindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, ErrValidation("malformed request body", nil))
		return req, false
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			WriteError(c, err)
			return req, false
		}
	}
	return req, true
}

// 数値でないIDはルート上解決できないものとして404扱い。
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		WriteError(c, ErrNotFound("not found"))
		return 0, false
	}
	return id, true
}

// Locationヘッダ用。読み出し形が Identifiable を実装していればIDを出す。
type Identifiable interface {
	ResourceID() uint64
}

func formatID(v any) string {
	if ident, ok := v.(Identifiable); ok {
		return strconv.FormatUint(ident.ResourceID(), 10)
	}
	return ""
}
