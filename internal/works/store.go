package works

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storekeeper-backend/internal/platform/db"
)

type Store struct{}

func NewStore() *Store { return &Store{} }

// ===== works =====

const workColumns = `id, customer_id, comment, outbound_close_timestamp, outbound_close_user_id, return_close_timestamp, return_close_user_id`

func scanWork(row *sql.Row) (*WorkResponse, error) {
	var w WorkResponse
	err := row.Scan(&w.ID, &w.CustomerID, &w.Comment,
		&w.OutboundCloseTimestamp, &w.OutboundCloseUserID,
		&w.ReturnCloseTimestamp, &w.ReturnCloseUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) List(ctx context.Context, q db.DBTX) ([]WorkResponse, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+workColumns+` FROM works ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkResponse
	for rows.Next() {
		var w WorkResponse
		if err := rows.Scan(&w.ID, &w.CustomerID, &w.Comment,
			&w.OutboundCloseTimestamp, &w.OutboundCloseUserID,
			&w.ReturnCloseTimestamp, &w.ReturnCloseUserID); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id uint64) (*WorkResponse, error) {
	return scanWork(q.QueryRowContext(ctx, `SELECT `+workColumns+` FROM works WHERE id = ?`, id))
}

func (s *Store) Insert(ctx context.Context, q db.DBTX, req CreateWorkRequest) (uint64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO works (customer_id, comment) VALUES (?, ?)`,
		req.CustomerID, req.Comment)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) Update(ctx context.Context, q db.DBTX, id uint64, req UpdateWorkRequest) error {
	sets := []string{}
	args := []any{}
	if req.CustomerID != nil {
		sets = append(sets, "customer_id = ?")
		args = append(args, *req.CustomerID)
	}
	if req.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *req.Comment)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE works SET %s WHERE id = ?`, strings.Join(sets, ", "))
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, q db.DBTX, id uint64) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) CloseOutbound(ctx context.Context, q db.DBTX, id uint64, at time.Time, userID uint64) error {
	_, err := q.ExecContext(ctx,
		`UPDATE works SET outbound_close_timestamp = ?, outbound_close_user_id = ? WHERE id = ?`,
		at, userID, id)
	return err
}

func (s *Store) CloseReturned(ctx context.Context, q db.DBTX, id uint64, at time.Time, userID uint64) error {
	_, err := q.ExecContext(ctx,
		`UPDATE works SET return_close_timestamp = ?, return_close_user_id = ? WHERE id = ?`,
		at, userID, id)
	return err
}

// ===== work items =====

const workItemColumns = `id, work_id, item_id, outbound_quantity, return_quantity`

func scanWorkItem(row *sql.Row) (*WorkItemResponse, error) {
	var w WorkItemResponse
	err := row.Scan(&w.ID, &w.WorkID, &w.ItemID, &w.OutboundQuantity, &w.ReturnQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) ListItems(ctx context.Context, q db.DBTX, workID uint64) ([]WorkItemResponse, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+workItemColumns+` FROM work_items WHERE work_id = ? ORDER BY id`, workID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkItemResponse
	for rows.Next() {
		var w WorkItemResponse
		if err := rows.Scan(&w.ID, &w.WorkID, &w.ItemID, &w.OutboundQuantity, &w.ReturnQuantity); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) GetItem(ctx context.Context, q db.DBTX, workID, id uint64) (*WorkItemResponse, error) {
	return scanWorkItem(q.QueryRowContext(ctx,
		`SELECT `+workItemColumns+` FROM work_items WHERE work_id = ? AND id = ?`, workID, id))
}

func (s *Store) InsertItem(ctx context.Context, q db.DBTX, workID uint64, req CreateWorkItemRequest) (uint64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO work_items (work_id, item_id, outbound_quantity, return_quantity) VALUES (?, ?, ?, ?)`,
		workID, req.ItemID, req.OutboundQuantity, req.ReturnQuantity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) UpdateItem(ctx context.Context, q db.DBTX, workID, id uint64, req UpdateWorkItemRequest) error {
	sets := []string{}
	args := []any{}
	if req.ItemID != nil {
		sets = append(sets, "item_id = ?")
		args = append(args, *req.ItemID)
	}
	if req.OutboundQuantity != nil {
		sets = append(sets, "outbound_quantity = ?")
		args = append(args, *req.OutboundQuantity)
	}
	if req.ReturnQuantity != nil {
		sets = append(sets, "return_quantity = ?")
		args = append(args, *req.ReturnQuantity)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, workID, id)
	query := fmt.Sprintf(`UPDATE work_items SET %s WHERE work_id = ? AND id = ?`, strings.Join(sets, ", "))
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) DeleteItem(ctx context.Context, q db.DBTX, workID, id uint64) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM work_items WHERE work_id = ? AND id = ?`, workID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
