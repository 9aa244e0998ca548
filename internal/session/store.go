package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storekeeper-backend/internal/platform/db"
)

// サーバ側セッション行。トークン（JWT）が指すのはこの行のID。
type Session struct {
	ID        string
	UserID    uint64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) Insert(ctx context.Context, q db.DBTX, sess *Session) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id string) (*Session, error) {
	var sess Session
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, q db.DBTX, id string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// 期限切れ行の掃除。ログイン時に便乗で呼ぶ。
func (s *Store) DeleteExpired(ctx context.Context, q db.DBTX, now time.Time) error {
	_, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)
	return err
}
