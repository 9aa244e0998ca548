package works

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
)

func RegisterRoutes(r gin.IRoutes, conn *sql.DB) {
	svc := NewService(conn)
	rest.Register[WorkResponse, CreateWorkRequest, UpdateWorkRequest](r, "works", svc)
	rest.RegisterNested[WorkItemResponse, CreateWorkItemRequest, UpdateWorkItemRequest](r, "works", "items", NewItemService(conn))

	h := &Handler{svc: svc}
	r.PUT("/works/:id/close-outbound", h.CloseOutbound)
	r.PUT("/works/:id/close-returned", h.CloseReturned)
}
