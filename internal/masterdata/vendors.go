package masterdata

import (
	"database/sql"

	"storekeeper-backend/internal/platform/rest"
)

type Vendor struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (v Vendor) ResourceID() uint64 { return v.ID }

type CreateVendorRequest struct {
	Name string `json:"name"`
}

func (r CreateVendorRequest) Validate() *rest.Error {
	return rest.Rules{
		"name": {rest.Required(r.Name), rest.MaxLen(r.Name, 30)},
	}.Validate()
}

type UpdateVendorRequest struct {
	Name *string `json:"name"`
}

func (r UpdateVendorRequest) Validate() *rest.Error {
	return rest.Rules{
		"name": {rest.IfSet(r.Name, rest.Required), rest.IfSet(r.Name, func(v string) rest.Check { return rest.MaxLen(v, 30) })},
	}.Validate()
}

type VendorService = service[Vendor, CreateVendorRequest, UpdateVendorRequest]

func NewVendorService(conn *sql.DB) *VendorService {
	return &VendorService{
		db:         conn,
		store:      namedStore{table: "vendors", column: "name"},
		label:      "vendor",
		wrap:       func(r row) Vendor { return Vendor{ID: r.ID, Name: r.Name} },
		createName: func(c CreateVendorRequest) string { return c.Name },
		updateName: func(u UpdateVendorRequest) *string { return u.Name },
	}
}
