package masterdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storekeeper-backend/internal/platform/db"
)

// id＋一意な名前だけのマスタ（vendors / units / customers）は
// テーブル名と列名を差し替えた同じSQLで賄える。

type row struct {
	ID   uint64
	Name string
}

type namedStore struct {
	table  string
	column string
}

func (s namedStore) list(ctx context.Context, q db.DBTX) ([]row, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY id`, s.column, s.table)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s namedStore) get(ctx context.Context, q db.DBTX, id uint64) (*row, error) {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE id = ?`, s.column, s.table)
	var r row
	err := q.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s namedStore) insert(ctx context.Context, q db.DBTX, name string) (uint64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`, s.table, s.column)
	res, err := q.ExecContext(ctx, query, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s namedStore) update(ctx context.Context, q db.DBTX, id uint64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE id = ?`, s.table, s.column)
	_, err := q.ExecContext(ctx, query, name, id)
	return err
}

func (s namedStore) delete(ctx context.Context, q db.DBTX, id uint64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
	res, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
