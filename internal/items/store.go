package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storekeeper-backend/internal/platform/db"
)

type Store struct{}

func NewStore() *Store { return &Store{} }

// ===== items =====

const itemColumns = `id, name, vendor_id, article_number, quantity, unit_id`

func scanItem(row *sql.Row) (*ItemResponse, error) {
	var i ItemResponse
	err := row.Scan(&i.ID, &i.Name, &i.VendorID, &i.ArticleNumber, &i.Quantity, &i.UnitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Store) List(ctx context.Context, q db.DBTX) ([]ItemResponse, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemResponse
	for rows.Next() {
		var i ItemResponse
		if err := rows.Scan(&i.ID, &i.Name, &i.VendorID, &i.ArticleNumber, &i.Quantity, &i.UnitID); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id uint64) (*ItemResponse, error) {
	return scanItem(q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
}

func (s *Store) Insert(ctx context.Context, q db.DBTX, req CreateItemRequest) (uint64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO items (name, vendor_id, article_number, quantity, unit_id) VALUES (?, ?, ?, ?, ?)`,
		req.Name, req.VendorID, req.ArticleNumber, req.Quantity, req.UnitID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) Update(ctx context.Context, q db.DBTX, id uint64, req UpdateItemRequest) error {
	sets := []string{}
	args := []any{}
	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.VendorID != nil {
		sets = append(sets, "vendor_id = ?")
		args = append(args, *req.VendorID)
	}
	if req.ArticleNumber != nil {
		sets = append(sets, "article_number = ?")
		args = append(args, *req.ArticleNumber)
	}
	if req.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *req.Quantity)
	}
	if req.UnitID != nil {
		sets = append(sets, "unit_id = ?")
		args = append(args, *req.UnitID)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE items SET %s WHERE id = ?`, strings.Join(sets, ", "))
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, q db.DBTX, id uint64) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== barcodes =====

const barcodeColumns = `id, barcode, quantity, item_id, main`

func scanBarcode(row *sql.Row) (*BarcodeResponse, error) {
	var b BarcodeResponse
	err := row.Scan(&b.ID, &b.Barcode, &b.Quantity, &b.ItemID, &b.Main)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) ListBarcodes(ctx context.Context, q db.DBTX, itemID uint64) ([]BarcodeResponse, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+barcodeColumns+` FROM barcodes WHERE item_id = ? ORDER BY id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BarcodeResponse
	for rows.Next() {
		var b BarcodeResponse
		if err := rows.Scan(&b.ID, &b.Barcode, &b.Quantity, &b.ItemID, &b.Main); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) GetBarcode(ctx context.Context, q db.DBTX, itemID, id uint64) (*BarcodeResponse, error) {
	return scanBarcode(q.QueryRowContext(ctx,
		`SELECT `+barcodeColumns+` FROM barcodes WHERE item_id = ? AND id = ?`, itemID, id))
}

func (s *Store) InsertBarcode(ctx context.Context, q db.DBTX, itemID uint64, barcode string, quantity int, main bool) (uint64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO barcodes (barcode, quantity, item_id, main) VALUES (?, ?, ?, ?)`,
		barcode, quantity, itemID, main)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) UpdateBarcode(ctx context.Context, q db.DBTX, itemID, id uint64, req UpdateBarcodeRequest) error {
	sets := []string{}
	args := []any{}
	if req.Barcode != nil {
		sets = append(sets, "barcode = ?")
		args = append(args, *req.Barcode)
	}
	if req.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *req.Quantity)
	}
	if req.Main != nil {
		sets = append(sets, "main = ?")
		args = append(args, *req.Main)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, itemID, id)
	query := fmt.Sprintf(`UPDATE barcodes SET %s WHERE item_id = ? AND id = ?`, strings.Join(sets, ", "))
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteBarcode(ctx context.Context, q db.DBTX, itemID, id uint64) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM barcodes WHERE item_id = ? AND id = ?`, itemID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
