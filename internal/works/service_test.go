package works

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

// customer / user / item を1件ずつ用意する
func seedRefs(t *testing.T, conn *sql.DB) (customerID, userID, itemID uint64) {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO customers (name) VALUES (?)`, "Globex")
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	cid, _ := res.LastInsertId()

	res, err = conn.Exec(
		`INSERT INTO users (username, password_hash, email) VALUES (?, ?, ?)`,
		"worker", "x", "w@example.com",
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	uid, _ := res.LastInsertId()

	if _, err := conn.Exec(`INSERT INTO vendors (name) VALUES (?)`, "Acme"); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO units (unit) VALUES (?)`, "pcs"); err != nil {
		t.Fatalf("seed unit: %v", err)
	}
	res, err = conn.Exec(
		`INSERT INTO items (name, vendor_id, quantity, unit_id) VALUES (?, 1, 0, 1)`, "Bolt",
	)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	iid, _ := res.LastInsertId()
	return uint64(cid), uint64(uid), uint64(iid)
}

func TestCreateWork(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	cid, _, _ := seedRefs(t, conn)

	comment := "urgent"
	w, err := svc.Create(ctx, CreateWorkRequest{CustomerID: cid, Comment: &comment})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if w.CustomerID != cid || w.Comment == nil || *w.Comment != "urgent" {
		t.Errorf("unexpected work: %+v", w)
	}
	if w.OutboundCloseTimestamp != nil || w.ReturnCloseTimestamp != nil {
		t.Error("expected new work to be open")
	}
}

func TestCreateWorkUnknownCustomer(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	seedRefs(t, conn)

	_, err := svc.Create(context.Background(), CreateWorkRequest{CustomerID: 999})
	if code := apiCode(t, err); code != rest.CodeValidation {
		t.Errorf("expected VALIDATION for unknown customer, got %s", code)
	}
}

func TestCloseOutbound(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	cid, uid, _ := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})

	closed, err := svc.CloseOutbound(ctx, w.ID, uid)
	if err != nil {
		t.Fatalf("CloseOutbound: %v", err)
	}
	if closed.OutboundCloseTimestamp == nil {
		t.Fatal("expected outbound close timestamp")
	}
	if closed.OutboundCloseUserID == nil || *closed.OutboundCloseUserID != uid {
		t.Errorf("expected closing user %d, got %v", uid, closed.OutboundCloseUserID)
	}

	// 締め直しは不可
	_, err = svc.CloseOutbound(ctx, w.ID, uid)
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT on double close, got %s", code)
	}
}

func TestCloseReturnedRequiresOutbound(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	ctx := context.Background()
	cid, uid, _ := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})

	_, err := svc.CloseReturned(ctx, w.ID, uid)
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT before outbound close, got %s", code)
	}

	if _, err := svc.CloseOutbound(ctx, w.ID, uid); err != nil {
		t.Fatalf("CloseOutbound: %v", err)
	}
	closed, err := svc.CloseReturned(ctx, w.ID, uid)
	if err != nil {
		t.Fatalf("CloseReturned: %v", err)
	}
	if closed.ReturnCloseTimestamp == nil {
		t.Error("expected return close timestamp")
	}

	_, err = svc.CloseReturned(ctx, w.ID, uid)
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT on double return close, got %s", code)
	}
}

func TestWorkItemDuplicate(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	isvc := NewItemService(conn)
	ctx := context.Background()
	cid, _, iid := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})

	if _, err := isvc.Create(ctx, w.ID, CreateWorkItemRequest{ItemID: iid, OutboundQuantity: 3}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := isvc.Create(ctx, w.ID, CreateWorkItemRequest{ItemID: iid, OutboundQuantity: 1})
	if code := apiCode(t, err); code != rest.CodeConflict {
		t.Errorf("expected CONFLICT for duplicate item, got %s", code)
	}
}

func TestWorkItemUnknownItem(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	isvc := NewItemService(conn)
	ctx := context.Background()
	cid, _, _ := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})

	_, err := isvc.Create(ctx, w.ID, CreateWorkItemRequest{ItemID: 999, OutboundQuantity: 1})
	if code := apiCode(t, err); code != rest.CodeValidation {
		t.Errorf("expected VALIDATION for unknown item, got %s", code)
	}
}

func TestWorkItemParentNotFound(t *testing.T) {
	conn := db.NewTestDB(t)
	isvc := NewItemService(conn)

	_, err := isvc.List(context.Background(), 999)
	if code := apiCode(t, err); code != rest.CodeNotFound {
		t.Errorf("expected NOT_FOUND for missing work, got %s", code)
	}
}

func TestDeleteWorkCascadesItems(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	isvc := NewItemService(conn)
	ctx := context.Background()
	cid, _, iid := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})
	if _, err := isvc.Create(ctx, w.ID, CreateWorkItemRequest{ItemID: iid, OutboundQuantity: 2}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, w.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM work_items`).Scan(&n); err != nil {
		t.Fatalf("count work_items: %v", err)
	}
	if n != 0 {
		t.Errorf("expected work items removed with work, got %d", n)
	}
}

func TestWorkItemReturnQuantity(t *testing.T) {
	conn := db.NewTestDB(t)
	svc := NewService(conn)
	isvc := NewItemService(conn)
	ctx := context.Background()
	cid, _, iid := seedRefs(t, conn)

	w, _ := svc.Create(ctx, CreateWorkRequest{CustomerID: cid})
	wi, _ := isvc.Create(ctx, w.ID, CreateWorkItemRequest{ItemID: iid, OutboundQuantity: 5})
	if wi.ReturnQuantity != nil {
		t.Errorf("expected nil return quantity, got %v", *wi.ReturnQuantity)
	}

	ret := 3
	got, err := isvc.Update(ctx, w.ID, wi.ID, UpdateWorkItemRequest{ReturnQuantity: &ret})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ReturnQuantity == nil || *got.ReturnQuantity != 3 {
		t.Errorf("expected return quantity 3, got %v", got.ReturnQuantity)
	}
	if got.OutboundQuantity != 5 {
		t.Errorf("outbound quantity changed unexpectedly: %d", got.OutboundQuantity)
	}
}
