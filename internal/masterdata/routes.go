package masterdata

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"storekeeper-backend/internal/platform/rest"
)

func RegisterRoutes(r gin.IRoutes, conn *sql.DB) {
	rest.Register[Vendor, CreateVendorRequest, UpdateVendorRequest](r, "vendors", NewVendorService(conn))
	rest.Register[Unit, CreateUnitRequest, UpdateUnitRequest](r, "units", NewUnitService(conn))
	rest.Register[Customer, CreateCustomerRequest, UpdateCustomerRequest](r, "customers", NewCustomerService(conn))
}
