package stockevents

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
)

func apiCode(t *testing.T, err error) rest.Code {
	t.Helper()
	var api *rest.Error
	if !errors.As(err, &api) {
		t.Fatalf("expected *rest.Error, got %v", err)
	}
	return api.Code
}

func seedItem(t *testing.T, conn *sql.DB) uint64 {
	t.Helper()
	if _, err := conn.Exec(`INSERT INTO vendors (name) VALUES (?)`, "Acme"); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO units (unit) VALUES (?)`, "pcs"); err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	res, err := conn.Exec(`INSERT INTO items (name, vendor_id, quantity, unit_id) VALUES (?, 1, 0, 1)`, "Bolt")
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

func TestCreateAcquisition(t *testing.T) {
	svc := NewAcquisitionService(db.NewTestDB(t))
	ctx := context.Background()

	comment := "monthly delivery"
	a, err := svc.Create(ctx, CreateAcquisitionRequest{Comment: &comment})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 || a.Timestamp.IsZero() {
		t.Errorf("unexpected acquisition: %+v", a)
	}
	if a.Comment == nil || *a.Comment != "monthly delivery" {
		t.Errorf("unexpected comment: %v", a.Comment)
	}
}

func TestUpdateAcquisitionComment(t *testing.T) {
	svc := NewAcquisitionService(db.NewTestDB(t))
	ctx := context.Background()

	a, _ := svc.Create(ctx, CreateAcquisitionRequest{})
	if a.Comment != nil {
		t.Errorf("expected nil comment, got %v", *a.Comment)
	}

	comment := "corrected"
	got, err := svc.Update(ctx, a.ID, UpdateAcquisitionRequest{Comment: &comment})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Comment == nil || *got.Comment != "corrected" {
		t.Errorf("expected updated comment, got %v", got.Comment)
	}
	// timestamp はサーバ管理。更新では動かない。
	if !got.Timestamp.Equal(a.Timestamp) {
		t.Errorf("timestamp changed on update: %v -> %v", a.Timestamp, got.Timestamp)
	}
}

func TestAcquisitionItemDuplicate(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewAcquisitionService(conn)
	isvc := NewAcquisitionItemService(conn)
	ctx := context.Background()
	itemID := seedItem(t, conn)

	a, _ := svc.Create(ctx, CreateAcquisitionRequest{})

	ai, err := isvc.Create(ctx, a.ID, CreateAcquisitionItemRequest{ItemID: itemID, Quantity: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ai.AcquisitionID != a.ID || ai.Quantity != 5 {
		t.Errorf("unexpected acquisition item: %+v", ai)
	}

	_, err = isvc.Create(ctx, a.ID, CreateAcquisitionItemRequest{ItemID: itemID, Quantity: 2})
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT for duplicate item, got %s", code)
	}
}

func TestAcquisitionItemUnknownItem(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewAcquisitionService(conn)
	isvc := NewAcquisitionItemService(conn)
	ctx := context.Background()
	seedItem(t, conn)

	a, _ := svc.Create(ctx, CreateAcquisitionRequest{})

	_, err := isvc.Create(ctx, a.ID, CreateAcquisitionItemRequest{ItemID: 999, Quantity: 1})
	if code := apiCode(t, err); code != rest.CodeValidation {
		t.Errorf("expected VALIDATION for unknown item, got %s", code)
	}
}

func TestAcquisitionItemParentNotFound(t *testing.T) {
	isvc := NewAcquisitionItemService(db.NewTestDB(t))

	_, err := isvc.List(context.Background(), 999)
	if code := apiCode(t, err); code != rest.CodeNotFound {
		t.Errorf("expected NOT_FOUND for missing parent, got %s", code)
	}
}

func TestDeleteAcquisitionCascadesItems(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewAcquisitionService(conn)
	isvc := NewAcquisitionItemService(conn)
	ctx := context.Background()
	itemID := seedItem(t, conn)

	a, _ := svc.Create(ctx, CreateAcquisitionRequest{})
	if _, err := isvc.Create(ctx, a.ID, CreateAcquisitionItemRequest{ItemID: itemID, Quantity: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM acquisition_items`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected items removed with acquisition, got %d", n)
	}
}

func TestStocktakingWithZeroCount(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewStocktakingService(conn)
	isvc := NewStocktakingItemService(conn)
	ctx := context.Background()
	itemID := seedItem(t, conn)

	st, err := svc.Create(ctx, CreateStocktakingRequest{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 棚卸では「数えたら0個だった」が正当な記録
	si, err := isvc.Create(ctx, st.ID, CreateStocktakingItemRequest{ItemID: itemID, Quantity: 0})
	if err != nil {
		t.Fatalf("Create item: %v", err)
	}
	if si.StocktakingID != st.ID || si.Quantity != 0 {
		t.Errorf("unexpected stocktaking item: %+v", si)
	}
}

func TestStocktakingItemUpdate(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewStocktakingService(conn)
	isvc := NewStocktakingItemService(conn)
	ctx := context.Background()
	itemID := seedItem(t, conn)

	st, _ := svc.Create(ctx, CreateStocktakingRequest{})
	si, _ := isvc.Create(ctx, st.ID, CreateStocktakingItemRequest{ItemID: itemID, Quantity: 10})

	qty := 7
	got, err := isvc.Update(ctx, st.ID, si.ID, UpdateStocktakingItemRequest{Quantity: &qty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", got.Quantity)
	}
	if got.ItemID != itemID {
		t.Errorf("item changed unexpectedly: %d", got.ItemID)
	}
}
