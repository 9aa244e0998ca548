package items

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

// vendor/unit を1件ずつ用意してIDを返す
func seedRefs(t *testing.T, conn *sql.DB) (vendorID, unitID uint64) {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO vendors (name) VALUES (?)`, "Acme")
	if err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	vid, _ := res.LastInsertId()

	res, err = conn.Exec(`INSERT INTO units (unit) VALUES (?)`, "pcs")
	if err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	uid, _ := res.LastInsertId()
	return uint64(vid), uint64(uid)
}

func TestCreateAndGetItem(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	item, err := svc.Create(ctx, CreateItemRequest{Name: "Bolt M6", VendorID: vid, Quantity: 10, UnitID: uid})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == 0 || item.Quantity != 10 {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.ArticleNumber != nil {
		t.Errorf("expected nil article_number, got %v", *item.ArticleNumber)
	}

	got, err := svc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Bolt M6" || got.VendorID != vid || got.UnitID != uid {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestCreateItemBadReference(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	_, uid := seedRefs(t, conn)

	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Bolt", VendorID: 999, Quantity: 0, UnitID: uid})
	if code := apiCode(t, err); code != rest.CodeValidation {
		t.Errorf("expected VALIDATION for unknown vendor, got %s", code)
	}
}

func TestCreateItemDuplicateName(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	req := CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 0, UnitID: uid}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, req)
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", code)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	item, _ := svc.Create(ctx, CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 5, UnitID: uid})

	qty := 42
	got, err := svc.Update(ctx, item.ID, UpdateItemRequest{Quantity: &qty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Quantity != 42 {
		t.Errorf("expected quantity 42, got %d", got.Quantity)
	}
	if got.Name != "Bolt" {
		t.Errorf("name changed unexpectedly: %q", got.Name)
	}
}

func TestDeleteItemCascadesBarcodes(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	bsvc := NewBarcodeService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	item, _ := svc.Create(ctx, CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 0, UnitID: uid})
	if _, err := bsvc.Create(ctx, item.ID, CreateBarcodeRequest{Barcode: "4001234567890"}); err != nil {
		t.Fatalf("create barcode: %v", err)
	}

	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM barcodes`).Scan(&n); err != nil {
		t.Fatalf("count barcodes: %v", err)
	}
	if n != 0 {
		t.Errorf("expected barcodes removed with item, got %d", n)
	}
}

func TestDeleteItemWhileReferenced(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	item, _ := svc.Create(ctx, CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 0, UnitID: uid})

	if _, err := conn.Exec(`INSERT INTO acquisitions (timestamp) VALUES (CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("seed acquisition: %v", err)
	}
	if _, err := conn.Exec(
		`INSERT INTO acquisition_items (acquisition_id, item_id, quantity) VALUES (1, ?, 5)`, item.ID,
	); err != nil {
		t.Fatalf("seed acquisition item: %v", err)
	}

	err := svc.Delete(ctx, item.ID)
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT while referenced, got %s", code)
	}
}

func TestBarcodeDefaultQuantity(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	bsvc := NewBarcodeService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	item, _ := svc.Create(ctx, CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 0, UnitID: uid})

	b, err := bsvc.Create(ctx, item.ID, CreateBarcodeRequest{Barcode: "4001234567890"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", b.Quantity)
	}
}

func TestBarcodeDuplicatePerItem(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	bsvc := NewBarcodeService(conn)
	ctx := context.Background()
	vid, uid := seedRefs(t, conn)

	a, _ := svc.Create(ctx, CreateItemRequest{Name: "Bolt", VendorID: vid, Quantity: 0, UnitID: uid})
	b, _ := svc.Create(ctx, CreateItemRequest{Name: "Nut", VendorID: vid, Quantity: 0, UnitID: uid})

	if _, err := bsvc.Create(ctx, a.ID, CreateBarcodeRequest{Barcode: "CODE1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := bsvc.Create(ctx, a.ID, CreateBarcodeRequest{Barcode: "CODE1"})
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT for same item, got %s", code)
	}

	// 別itemなら同じバーコード文字列でも可
	if _, err := bsvc.Create(ctx, b.ID, CreateBarcodeRequest{Barcode: "CODE1"}); err != nil {
		t.Errorf("expected same barcode on another item to pass, got %v", err)
	}
}

func TestBarcodeParentNotFound(t *testing.T) {
	conn := db.NewTestDB(t)
	bsvc := NewBarcodeService(conn)

	_, err := bsvc.List(context.Background(), 999)
	if code := apiCode(t, err); code != rest.CodeNotFound {
		t.Errorf("expected NOT_FOUND for missing parent, got %s", code)
	}
}
