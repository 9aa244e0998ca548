package masterdata

import (
	"database/sql"

	"storekeeper-backend/internal/platform/rest"
)

type Customer struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (c Customer) ResourceID() uint64 { return c.ID }

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

func (r CreateCustomerRequest) Validate() *rest.Error {
	return rest.Rules{
		"name": {rest.Required(r.Name), rest.MaxLen(r.Name, 120)},
	}.Validate()
}

type UpdateCustomerRequest struct {
	Name *string `json:"name"`
}

func (r UpdateCustomerRequest) Validate() *rest.Error {
	return rest.Rules{
		"name": {rest.IfSet(r.Name, rest.Required), rest.IfSet(r.Name, func(v string) rest.Check { return rest.MaxLen(v, 120) })},
	}.Validate()
}

type CustomerService = service[Customer, CreateCustomerRequest, UpdateCustomerRequest]

func NewCustomerService(conn *sql.DB) *CustomerService {
	return &CustomerService{
		db:         conn,
		store:      namedStore{table: "customers", column: "name"},
		label:      "customer",
		wrap:       func(r row) Customer { return Customer{ID: r.ID, Name: r.Name} },
		createName: func(c CreateCustomerRequest) string { return c.Name },
		updateName: func(u UpdateCustomerRequest) *string { return u.Name },
	}
}
