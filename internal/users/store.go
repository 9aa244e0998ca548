package users

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

const userColumns = `id, username, password_hash, email, admin, disabled`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Admin, &u.Disabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) List(ctx context.Context, q db.DBTX) ([]User, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Admin, &u.Disabled); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id uint64) (*User, error) {
	return scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (s *Store) GetByUsername(ctx context.Context, q db.DBTX, username string) (*User, error) {
	return scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (s *Store) Insert(ctx context.Context, q db.DBTX, u *User) (uint64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, email, admin, disabled) VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Email, u.Admin, u.Disabled)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// 動的アップデート。nil のフィールドはSET句に含めない。
func (s *Store) Update(ctx context.Context, q db.DBTX, id uint64, req UpdateUserRequest, passwordHash *string) (int64, error) {
	sets := []string{}
	args := []any{}
	if req.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *req.Username)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *passwordHash)
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Admin != nil {
		sets = append(sets, "admin = ?")
		args = append(args, *req.Admin)
	}
	if req.Disabled != nil {
		sets = append(sets, "disabled = ?")
		args = append(args, *req.Disabled)
	}
	if len(sets) == 0 {
		return 1, nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(sets, ", "))
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, q db.DBTX, id uint64) (int64, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
