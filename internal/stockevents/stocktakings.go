package stockevents

import (
	"database/sql"
	"time"

	"storekeeper-backend/internal/platform/rest"
)

// 棚卸イベント。構造は acquisition と同一でJSONキーだけ異なる。
type StocktakingResponse struct {
	ID        uint64    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Comment   *string   `json:"comment"`
}

func (s StocktakingResponse) ResourceID() uint64 { return s.ID }

type CreateStocktakingRequest struct {
	Comment *string `json:"comment"`
}

type UpdateStocktakingRequest struct {
	Comment *string `json:"comment"`
}

type StocktakingItemResponse struct {
	ID            uint64 `json:"id"`
	StocktakingID uint64 `json:"stocktaking_id"`
	ItemID        uint64 `json:"item_id"`
	Quantity      int    `json:"quantity"`
}

func (s StocktakingItemResponse) ResourceID() uint64 { return s.ID }

type CreateStocktakingItemRequest struct {
	ItemID   uint64 `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (r CreateStocktakingItemRequest) Validate() *rest.Error {
	return rest.Rules{
		"item_id":  {rest.PositiveID(r.ItemID)},
		"quantity": {rest.MinInt(r.Quantity, 0)},
	}.Validate()
}

type UpdateStocktakingItemRequest struct {
	ItemID   *uint64 `json:"item_id"`
	Quantity *int    `json:"quantity"`
}

func (r UpdateStocktakingItemRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.ItemID != nil {
		rules["item_id"] = []rest.Check{rest.PositiveID(*r.ItemID)}
	}
	if r.Quantity != nil {
		rules["quantity"] = []rest.Check{rest.MinInt(*r.Quantity, 0)}
	}
	return rules.Validate()
}

var stocktakingTables = eventStore{
	table:      "stocktakings",
	childTable: "stocktaking_items",
	fk:         "stocktaking_id",
}

type StocktakingService = eventService[StocktakingResponse, CreateStocktakingRequest, UpdateStocktakingRequest]

func NewStocktakingService(conn *sql.DB) *StocktakingService {
	return &StocktakingService{
		db:    conn,
		store: stocktakingTables,
		label: "stocktaking",
		wrap: func(e event) StocktakingResponse {
			return StocktakingResponse{ID: e.ID, Timestamp: e.Timestamp, Comment: e.Comment}
		},
		createComment: func(c CreateStocktakingRequest) *string { return c.Comment },
		updateComment: func(u UpdateStocktakingRequest) *string { return u.Comment },
	}
}

type StocktakingItemService = childService[StocktakingItemResponse, CreateStocktakingItemRequest, UpdateStocktakingItemRequest]

func NewStocktakingItemService(conn *sql.DB) *StocktakingItemService {
	return &StocktakingItemService{
		db:         conn,
		store:      stocktakingTables,
		label:      "stocktaking",
		childLabel: "stocktaking item",
		wrap: func(c childRow) StocktakingItemResponse {
			return StocktakingItemResponse{ID: c.ID, StocktakingID: c.ParentID, ItemID: c.ItemID, Quantity: c.Quantity}
		},
		createFields: func(c CreateStocktakingItemRequest) (uint64, int) { return c.ItemID, c.Quantity },
		updateFields: func(u UpdateStocktakingItemRequest) (*uint64, *int) { return u.ItemID, u.Quantity },
	}
}
