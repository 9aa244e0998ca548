package masterdata

import (
	"context"
	"database/sql"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
)

// マスタ3種で共通のCRUD実装。DTO型だけ差し替える。
type service[E any, C any, U any] struct {
	db    *sql.DB
	store namedStore
	label string

	wrap       func(row) E
	createName func(C) string
	updateName func(U) *string
}

func (s *service[E, C, U]) List(ctx context.Context) ([]E, error) {
	rows, err := s.store.list(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make([]E, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.wrap(r))
	}
	return out, nil
}

func (s *service[E, C, U]) Get(ctx context.Context, id uint64) (*E, error) {
	r, err := s.store.get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, rest.ErrNotFound(s.label + " not found")
	}
	e := s.wrap(*r)
	return &e, nil
}

func (s *service[E, C, U]) Create(ctx context.Context, req C) (*E, error) {
	name := s.createName(req)
	var created row
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.insert(ctx, tx, name)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict(s.label + " already exists")
			}
			return err
		}
		created = row{ID: id, Name: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e := s.wrap(created)
	return &e, nil
}

func (s *service[E, C, U]) Update(ctx context.Context, id uint64, req U) (*E, error) {
	var updated row
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.store.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound(s.label + " not found")
		}

		name := s.updateName(req)
		if name == nil {
			updated = *current
			return nil
		}

		if err := s.store.update(ctx, tx, id, *name); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict(s.label + " already exists")
			}
			return err
		}
		updated = row{ID: id, Name: *name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e := s.wrap(updated)
	return &e, nil
}

func (s *service[E, C, U]) Delete(ctx context.Context, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.store.delete(ctx, tx, id)
		if err != nil {
			if db.IsReferenced(err) {
				return rest.ErrConflict(s.label + " is referenced by other records")
			}
			return err
		}
		if n == 0 {
			return rest.ErrNotFound(s.label + " not found")
		}
		return nil
	})
}
