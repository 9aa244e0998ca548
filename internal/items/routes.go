package items

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
)

func RegisterRoutes(r gin.IRoutes, conn *sql.DB) {
	rest.Register[ItemResponse, CreateItemRequest, UpdateItemRequest](r, "items", NewService(conn))
	rest.RegisterNested[BarcodeResponse, CreateBarcodeRequest, UpdateBarcodeRequest](r, "items", "barcodes", NewBarcodeService(conn))
}
