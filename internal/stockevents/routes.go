package stockevents

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
)

func RegisterRoutes(r gin.IRoutes, conn *sql.DB) {
	rest.Register[AcquisitionResponse, CreateAcquisitionRequest, UpdateAcquisitionRequest](
		r, "acquisitions", NewAcquisitionService(conn))
	rest.RegisterNested[AcquisitionItemResponse, CreateAcquisitionItemRequest, UpdateAcquisitionItemRequest](
		r, "acquisitions", "items", NewAcquisitionItemService(conn))

	rest.Register[StocktakingResponse, CreateStocktakingRequest, UpdateStocktakingRequest](
		r, "stocktakings", NewStocktakingService(conn))
	rest.RegisterNested[StocktakingItemResponse, CreateStocktakingItemRequest, UpdateStocktakingItemRequest](
		r, "stocktakings", "items", NewStocktakingItemService(conn))
}
