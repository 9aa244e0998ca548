package stockevents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storekeeper-backend/internal/platform/db"
)

// acquisitions と stocktakings は「日時＋コメントの親、(親, item) 一意の明細」
// という完全に同じ形。テーブル名とFK列名だけ差し替えて共用する。

type event struct {
	ID        uint64
	Timestamp time.Time
	Comment   *string
}

type childRow struct {
	ID       uint64
	ParentID uint64
	ItemID   uint64
	Quantity int
}

type eventStore struct {
	table      string
	childTable string
	fk         string
}

// ===== parent =====

func (s eventStore) list(ctx context.Context, q db.DBTX) ([]event, error) {
	query := fmt.Sprintf(`SELECT id, timestamp, comment FROM %s ORDER BY id`, s.table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []event
	for rows.Next() {
		var e event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Comment); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s eventStore) get(ctx context.Context, q db.DBTX, id uint64) (*event, error) {
	query := fmt.Sprintf(`SELECT id, timestamp, comment FROM %s WHERE id = ?`, s.table)
	var e event
	err := q.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Timestamp, &e.Comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s eventStore) insert(ctx context.Context, q db.DBTX, ts time.Time, comment *string) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (timestamp, comment) VALUES (?, ?)`, s.table)
	res, err := q.ExecContext(ctx, query, ts, comment)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s eventStore) updateComment(ctx context.Context, q db.DBTX, id uint64, comment string) error {
	query := fmt.Sprintf(`UPDATE %s SET comment = ? WHERE id = ?`, s.table)
	_, err := q.ExecContext(ctx, query, comment, id)
	return err
}

func (s eventStore) delete(ctx context.Context, q db.DBTX, id uint64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ===== children =====

func (s eventStore) listChildren(ctx context.Context, q db.DBTX, parentID uint64) ([]childRow, error) {
	query := fmt.Sprintf(`SELECT id, %s, item_id, quantity FROM %s WHERE %s = ? ORDER BY id`,
		s.fk, s.childTable, s.fk)
	rows, err := q.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []childRow
	for rows.Next() {
		var c childRow
		if err := rows.Scan(&c.ID, &c.ParentID, &c.ItemID, &c.Quantity); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s eventStore) getChild(ctx context.Context, q db.DBTX, parentID, id uint64) (*childRow, error) {
	query := fmt.Sprintf(`SELECT id, %s, item_id, quantity FROM %s WHERE %s = ? AND id = ?`,
		s.fk, s.childTable, s.fk)
	var c childRow
	err := q.QueryRowContext(ctx, query, parentID, id).Scan(&c.ID, &c.ParentID, &c.ItemID, &c.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s eventStore) insertChild(ctx context.Context, q db.DBTX, parentID, itemID uint64, quantity int) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, item_id, quantity) VALUES (?, ?, ?)`, s.childTable, s.fk)
	res, err := q.ExecContext(ctx, query, parentID, itemID, quantity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s eventStore) updateChild(ctx context.Context, q db.DBTX, parentID, id uint64, itemID *uint64, quantity *int) error {
	sets := []string{}
	args := []any{}
	if itemID != nil {
		sets = append(sets, "item_id = ?")
		args = append(args, *itemID)
	}
	if quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *quantity)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, parentID, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ? AND id = ?`,
		s.childTable, strings.Join(sets, ", "), s.fk)
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

func (s eventStore) deleteChild(ctx context.Context, q db.DBTX, parentID, id uint64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND id = ?`, s.childTable, s.fk)
	res, err := q.ExecContext(ctx, query, parentID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
