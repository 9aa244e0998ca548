package stockevents

import (
	"database/sql"
	"time"

	"storekeeper-backend/internal/platform/rest"
)

// 入荷イベント。timestampはサーバ側で設定され、クライアントからは変更不可。
type AcquisitionResponse struct {
	ID        uint64    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Comment   *string   `json:"comment"`
}

func (a AcquisitionResponse) ResourceID() uint64 { return a.ID }

type CreateAcquisitionRequest struct {
	Comment *string `json:"comment"`
}

type UpdateAcquisitionRequest struct {
	Comment *string `json:"comment"`
}

type AcquisitionItemResponse struct {
	ID            uint64 `json:"id"`
	AcquisitionID uint64 `json:"acquisition_id"`
	ItemID        uint64 `json:"item_id"`
	Quantity      int    `json:"quantity"`
}

func (a AcquisitionItemResponse) ResourceID() uint64 { return a.ID }

type CreateAcquisitionItemRequest struct {
	ItemID   uint64 `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (r CreateAcquisitionItemRequest) Validate() *rest.Error {
	return rest.Rules{
		"item_id":  {rest.PositiveID(r.ItemID)},
		"quantity": {rest.MinInt(r.Quantity, 1)},
	}.Validate()
}

type UpdateAcquisitionItemRequest struct {
	ItemID   *uint64 `json:"item_id"`
	Quantity *int    `json:"quantity"`
}

func (r UpdateAcquisitionItemRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.ItemID != nil {
		rules["item_id"] = []rest.Check{rest.PositiveID(*r.ItemID)}
	}
	if r.Quantity != nil {
		rules["quantity"] = []rest.Check{rest.MinInt(*r.Quantity, 1)}
	}
	return rules.Validate()
}

var acquisitionTables = eventStore{
	table:      "acquisitions",
	childTable: "acquisition_items",
	fk:         "acquisition_id",
}

type AcquisitionService = eventService[AcquisitionResponse, CreateAcquisitionRequest, UpdateAcquisitionRequest]

func NewAcquisitionService(conn *sql.DB) *AcquisitionService {
	return &AcquisitionService{
		db:    conn,
		store: acquisitionTables,
		label: "acquisition",
		wrap: func(e event) AcquisitionResponse {
			return AcquisitionResponse{ID: e.ID, Timestamp: e.Timestamp, Comment: e.Comment}
		},
		createComment: func(c CreateAcquisitionRequest) *string { return c.Comment },
		updateComment: func(u UpdateAcquisitionRequest) *string { return u.Comment },
	}
}

type AcquisitionItemService = childService[AcquisitionItemResponse, CreateAcquisitionItemRequest, UpdateAcquisitionItemRequest]

func NewAcquisitionItemService(conn *sql.DB) *AcquisitionItemService {
	return &AcquisitionItemService{
		db:         conn,
		store:      acquisitionTables,
		label:      "acquisition",
		childLabel: "acquisition item",
		wrap: func(c childRow) AcquisitionItemResponse {
			return AcquisitionItemResponse{ID: c.ID, AcquisitionID: c.ParentID, ItemID: c.ItemID, Quantity: c.Quantity}
		},
		createFields: func(c CreateAcquisitionItemRequest) (uint64, int) { return c.ItemID, c.Quantity },
		updateFields: func(u UpdateAcquisitionItemRequest) (*uint64, *int) { return u.ItemID, u.Quantity },
	}
}
