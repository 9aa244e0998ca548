package items

import "storekeeper-backend/internal/platform/rest"

type ItemResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	VendorID      uint64 `json:"vendor_id"`
	ArticleNumber *int64 `json:"article_number"`
	Quantity      int    `json:"quantity"`
	UnitID        uint64 `json:"unit_id"`
}

func (i ItemResponse) ResourceID() uint64 { return i.ID }

type CreateItemRequest struct {
	Name          string `json:"name"`
	VendorID      uint64 `json:"vendor_id"`
	ArticleNumber *int64 `json:"article_number"`
	Quantity      int    `json:"quantity"`
	UnitID        uint64 `json:"unit_id"`
}

func (r CreateItemRequest) Validate() *rest.Error {
	return rest.Rules{
		"name":      {rest.Required(r.Name), rest.MaxLen(r.Name, 80)},
		"vendor_id": {rest.PositiveID(r.VendorID)},
		"unit_id":   {rest.PositiveID(r.UnitID)},
		"quantity":  {rest.MinInt(r.Quantity, 0)},
	}.Validate()
}

type UpdateItemRequest struct {
	Name          *string `json:"name"`
	VendorID      *uint64 `json:"vendor_id"`
	ArticleNumber *int64  `json:"article_number"`
	Quantity      *int    `json:"quantity"`
	UnitID        *uint64 `json:"unit_id"`
}

func (r UpdateItemRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.Name != nil {
		rules["name"] = []rest.Check{rest.Required(*r.Name), rest.MaxLen(*r.Name, 80)}
	}
	if r.VendorID != nil {
		rules["vendor_id"] = []rest.Check{rest.PositiveID(*r.VendorID)}
	}
	if r.UnitID != nil {
		rules["unit_id"] = []rest.Check{rest.PositiveID(*r.UnitID)}
	}
	if r.Quantity != nil {
		rules["quantity"] = []rest.Check{rest.MinInt(*r.Quantity, 0)}
	}
	return rules.Validate()
}

// ===== barcodes（itemの下にだけ存在） =====

type BarcodeResponse struct {
	ID       uint64 `json:"id"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
	ItemID   uint64 `json:"item_id"`
	Main     bool   `json:"main"`
}

func (b BarcodeResponse) ResourceID() uint64 { return b.ID }

type CreateBarcodeRequest struct {
	Barcode string `json:"barcode"`
	// 省略時は 1（スキャン1回あたりの数量倍率）
	Quantity *int `json:"quantity"`
	Main     bool `json:"main"`
}

func (r CreateBarcodeRequest) Validate() *rest.Error {
	rules := rest.Rules{
		"barcode": {rest.Required(r.Barcode), rest.MaxLen(r.Barcode, 15)},
	}
	if r.Quantity != nil {
		rules["quantity"] = []rest.Check{rest.MinInt(*r.Quantity, 1)}
	}
	return rules.Validate()
}

type UpdateBarcodeRequest struct {
	Barcode  *string `json:"barcode"`
	Quantity *int    `json:"quantity"`
	Main     *bool   `json:"main"`
}

func (r UpdateBarcodeRequest) Validate() *rest.Error {
	rules := rest.Rules{}
	if r.Barcode != nil {
		rules["barcode"] = []rest.Check{rest.Required(*r.Barcode), rest.MaxLen(*r.Barcode, 15)}
	}
	if r.Quantity != nil {
		rules["quantity"] = []rest.Check{rest.MinInt(*r.Quantity, 1)}
	}
	return rules.Validate()
}
