package works

import (
	"time"

	"storekeeper-backend/internal/platform/rest"
)

type WorkResponse struct {
	ID                     uint64     `json:"id"`
	CustomerID             uint64     `json:"customer_id"`
	Comment                *string    `json:"comment"`
	OutboundCloseTimestamp *time.Time `json:"outbound_close_timestamp"`
	OutboundCloseUserID    *uint64    `json:"outbound_close_user_id"`
	ReturnCloseTimestamp   *time.Time `json:"return_close_timestamp"`
	ReturnCloseUserID      *uint64    `json:"return_close_user_id"`
}

func (w WorkResponse) ResourceID() uint64 { return w.ID }

type CreateWorkRequest struct {
	CustomerID uint64  `json:"customer_id"`
	Comment    *string `json:"comment"`
}

func (r CreateWorkRequest) Validate() *rest.Error {
	return rest.Rules{
		"customer_id": {rest.PositiveID(r.CustomerID)},
	}.Validate()
}

// クローズ系フィールドは close-outbound / close-returned 経由でのみ変わる。
type UpdateWorkRequest struct {
	CustomerID *uint64 `json:"customer_id"`
	Comment    *string `json:"comment"`
}

func (r UpdateWorkRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.CustomerID != nil {
		rules["customer_id"] = []rest.Check{rest.PositiveID(*r.CustomerID)}
	}
	return rules.Validate()
}

// ===== nested: /works/:id/items =====

type WorkItemResponse struct {
	ID               uint64 `json:"id"`
	WorkID           uint64 `json:"work_id"`
	ItemID           uint64 `json:"item_id"`
	OutboundQuantity int    `json:"outbound_quantity"`
	ReturnQuantity   *int   `json:"return_quantity"`
}

func (w WorkItemResponse) ResourceID() uint64 { return w.ID }

type CreateWorkItemRequest struct {
	ItemID           uint64 `json:"item_id"`
	OutboundQuantity int    `json:"outbound_quantity"`
	ReturnQuantity   *int   `json:"return_quantity"`
}

func (r CreateWorkItemRequest) Validate() *rest.Error {
	rules := rest.Rules{
		"item_id":           {rest.PositiveID(r.ItemID)},
		"outbound_quantity": {rest.MinInt(r.OutboundQuantity, 1)},
	}
	if r.ReturnQuantity != nil {
		rules["return_quantity"] = []rest.Check{rest.MinInt(*r.ReturnQuantity, 0)}
	}
	return rules.Validate()
}

type UpdateWorkItemRequest struct {
	ItemID           *uint64 `json:"item_id"`
	OutboundQuantity *int    `json:"outbound_quantity"`
	ReturnQuantity   *int    `json:"return_quantity"`
}

func (r UpdateWorkItemRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.ItemID != nil {
		rules["item_id"] = []rest.Check{rest.PositiveID(*r.ItemID)}
	}
	if r.OutboundQuantity != nil {
		rules["outbound_quantity"] = []rest.Check{rest.MinInt(*r.OutboundQuantity, 1)}
	}
	if r.ReturnQuantity != nil {
		rules["return_quantity"] = []rest.Check{rest.MinInt(*r.ReturnQuantity, 0)}
	}
	return rules.Validate()
}
