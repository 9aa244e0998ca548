package stockevents

import (
	"context"
	"database/sql"
	"time"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
)

// 親（acquisition / stocktaking）側のCRUD。timestampはサーバ側で打つ。
type eventService[E any, C any, U any] struct {
	db    *sql.DB
	store eventStore
	label string

	wrap          func(event) E
	createComment func(C) *string
	updateComment func(U) *string
}

func (s *eventService[E, C, U]) List(ctx context.Context) ([]E, error) {
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

func (s *eventService[E, C, U]) Get(ctx context.Context, id uint64) (*E, error) {
	e, err := s.store.get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, rest.ErrNotFound(s.label + " not found")
	}
	out := s.wrap(*e)
	return &out, nil
}

func (s *eventService[E, C, U]) Create(ctx context.Context, req C) (*E, error) {
	var created *event
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.insert(ctx, tx, time.Now().UTC(), s.createComment(req))
		if err != nil {
			return err
		}
		created, err = s.store.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := s.wrap(*created)
	return &out, nil
}

func (s *eventService[E, C, U]) Update(ctx context.Context, id uint64, req U) (*E, error) {
	var updated *event
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.store.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound(s.label + " not found")
		}

		if comment := s.updateComment(req); comment != nil {
			if err := s.store.updateComment(ctx, tx, id, *comment); err != nil {
				return err
			}
		}

		updated, err = s.store.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := s.wrap(*updated)
	return &out, nil
}

// 明細はスキーマ側で ON DELETE CASCADE。
func (s *eventService[E, C, U]) Delete(ctx context.Context, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.store.delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return rest.ErrNotFound(s.label + " not found")
		}
		return nil
	})
}

// 明細側。(親, item) の一意性はUNIQUE制約に任せ、違反をCONFLICTに読み替える。
type childService[E any, C any, U any] struct {
	db         *sql.DB
	store      eventStore
	label      string
	childLabel string

	wrap         func(childRow) E
	createFields func(C) (itemID uint64, quantity int)
	updateFields func(U) (itemID *uint64, quantity *int)
}

func (s *childService[E, C, U]) resolveParent(ctx context.Context, q db.DBTX, parentID uint64) error {
	e, err := s.store.get(ctx, q, parentID)
	if err != nil {
		return err
	}
	if e == nil {
		return rest.ErrNotFound(s.label + " not found")
	}
	return nil
}

func (s *childService[E, C, U]) List(ctx context.Context, parentID uint64) ([]E, error) {
	if err := s.resolveParent(ctx, s.db, parentID); err != nil {
		return nil, err
	}
	rows, err := s.store.listChildren(ctx, s.db, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]E, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.wrap(r))
	}
	return out, nil
}

func (s *childService[E, C, U]) Get(ctx context.Context, parentID, id uint64) (*E, error) {
	if err := s.resolveParent(ctx, s.db, parentID); err != nil {
		return nil, err
	}
	c, err := s.store.getChild(ctx, s.db, parentID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, rest.ErrNotFound(s.childLabel + " not found")
	}
	out := s.wrap(*c)
	return &out, nil
}

func (s *childService[E, C, U]) Create(ctx context.Context, parentID uint64, req C) (*E, error) {
	itemID, quantity := s.createFields(req)

	var created *childRow
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveParent(ctx, tx, parentID); err != nil {
			return err
		}
		id, err := s.store.insertChild(ctx, tx, parentID, itemID, quantity)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("can not add one item twice")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid item_id", nil)
			}
			return err
		}
		created, err = s.store.getChild(ctx, tx, parentID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := s.wrap(*created)
	return &out, nil
}

func (s *childService[E, C, U]) Update(ctx context.Context, parentID, id uint64, req U) (*E, error) {
	itemID, quantity := s.updateFields(req)

	var updated *childRow
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveParent(ctx, tx, parentID); err != nil {
			return err
		}
		current, err := s.store.getChild(ctx, tx, parentID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound(s.childLabel + " not found")
		}

		if err := s.store.updateChild(ctx, tx, parentID, id, itemID, quantity); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("can not add one item twice")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid item_id", nil)
			}
			return err
		}

		updated, err = s.store.getChild(ctx, tx, parentID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := s.wrap(*updated)
	return &out, nil
}

func (s *childService[E, C, U]) Delete(ctx context.Context, parentID, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveParent(ctx, tx, parentID); err != nil {
			return err
		}
		n, err := s.store.deleteChild(ctx, tx, parentID, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return rest.ErrNotFound(s.childLabel + " not found")
		}
		return nil
	})
}
