package masterdata

import (
	"database/sql"

	"storekeeper-backend/internal/platform/rest"
)

// 計量単位。JSONのキーは name ではなく unit な点に注意。
type Unit struct {
	ID   uint64 `json:"id"`
	Unit string `json:"unit"`
}

func (u Unit) ResourceID() uint64 { return u.ID }

type CreateUnitRequest struct {
	Unit string `json:"unit"`
}

func (r CreateUnitRequest) Validate() *rest.Error {
	return rest.Rules{
		"unit": {rest.Required(r.Unit), rest.MaxLen(r.Unit, 20)},
	}.Validate()
}

type UpdateUnitRequest struct {
	Unit *string `json:"unit"`
}

func (r UpdateUnitRequest) Validate() *rest.Error {
	return rest.Rules{
		"unit": {rest.IfSet(r.Unit, rest.Required), rest.IfSet(r.Unit, func(v string) rest.Check { return rest.MaxLen(v, 20) })},
	}.Validate()
}

type UnitService = service[Unit, CreateUnitRequest, UpdateUnitRequest]

func NewUnitService(conn *sql.DB) *UnitService {
	return &UnitService{
		db:         conn,
		store:      namedStore{table: "units", column: "unit"},
		label:      "unit",
		wrap:       func(r row) Unit { return Unit{ID: r.ID, Unit: r.Name} },
		createName: func(c CreateUnitRequest) string { return c.Unit },
		updateName: func(u UpdateUnitRequest) *string { return u.Unit },
	}
}
