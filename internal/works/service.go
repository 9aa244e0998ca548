package works

import (
	"context"
	"database/sql"
	"time"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service {
	return &Service{db: conn, store: NewStore()}
}

func (s *Service) List(ctx context.Context) ([]WorkResponse, error) {
	return s.store.List(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, id uint64) (*WorkResponse, error) {
	w, err := s.store.Get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, rest.ErrNotFound("work not found")
	}
	return w, nil
}

func (s *Service) Create(ctx context.Context, req CreateWorkRequest) (*WorkResponse, error) {
	var out *WorkResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.Insert(ctx, tx, req)
		if err != nil {
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid customer_id", nil)
			}
			return err
		}
		out, err = s.store.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uint64, req UpdateWorkRequest) (*WorkResponse, error) {
	var out *WorkResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound("work not found")
		}

		if err := s.store.Update(ctx, tx, id, req); err != nil {
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid customer_id", nil)
			}
			return err
		}

		out, err = s.store.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 明細はスキーマ側で ON DELETE CASCADE。
func (s *Service) Delete(ctx context.Context, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.store.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return rest.ErrNotFound("work not found")
		}
		return nil
	})
}

// CloseOutbound は出庫を締める。締め直しは不可。
func (s *Service) CloseOutbound(ctx context.Context, id, userID uint64) (*WorkResponse, error) {
	var out *WorkResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		w, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return rest.ErrNotFound("work not found")
		}
		if w.OutboundCloseTimestamp != nil {
			return rest.ErrConflict("outbound already closed")
		}

		if err := s.store.CloseOutbound(ctx, tx, id, time.Now().UTC(), userID); err != nil {
			return err
		}
		out, err = s.store.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CloseReturned は返却を締める。出庫が締まっていることが前提。
func (s *Service) CloseReturned(ctx context.Context, id, userID uint64) (*WorkResponse, error) {
	var out *WorkResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		w, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return rest.ErrNotFound("work not found")
		}
		if w.OutboundCloseTimestamp == nil {
			return rest.ErrConflict("outbound is not closed yet")
		}
		if w.ReturnCloseTimestamp != nil {
			return rest.ErrConflict("return already closed")
		}

		if err := s.store.CloseReturned(ctx, tx, id, time.Now().UTC(), userID); err != nil {
			return err
		}
		out, err = s.store.Get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ===== nested: /works/:id/items =====

type ItemService struct {
	db    *sql.DB
	store *Store
}

func NewItemService(conn *sql.DB) *ItemService {
	return &ItemService{db: conn, store: NewStore()}
}

func (s *ItemService) resolveWork(ctx context.Context, q db.DBTX, workID uint64) error {
	w, err := s.store.Get(ctx, q, workID)
	if err != nil {
		return err
	}
	if w == nil {
		return rest.ErrNotFound("work not found")
	}
	return nil
}

func (s *ItemService) List(ctx context.Context, workID uint64) ([]WorkItemResponse, error) {
	if err := s.resolveWork(ctx, s.db, workID); err != nil {
		return nil, err
	}
	return s.store.ListItems(ctx, s.db, workID)
}

func (s *ItemService) Get(ctx context.Context, workID, id uint64) (*WorkItemResponse, error) {
	if err := s.resolveWork(ctx, s.db, workID); err != nil {
		return nil, err
	}
	w, err := s.store.GetItem(ctx, s.db, workID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, rest.ErrNotFound("work item not found")
	}
	return w, nil
}

// 同じ (work, item) の組は一意。UNIQUE制約違反をCONFLICTに読み替える。
func (s *ItemService) Create(ctx context.Context, workID uint64, req CreateWorkItemRequest) (*WorkItemResponse, error) {
	var out *WorkItemResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveWork(ctx, tx, workID); err != nil {
			return err
		}
		id, err := s.store.InsertItem(ctx, tx, workID, req)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("can not add one item twice")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid item_id", nil)
			}
			return err
		}
		out, err = s.store.GetItem(ctx, tx, workID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ItemService) Update(ctx context.Context, workID, id uint64, req UpdateWorkItemRequest) (*WorkItemResponse, error) {
	var out *WorkItemResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveWork(ctx, tx, workID); err != nil {
			return err
		}
		current, err := s.store.GetItem(ctx, tx, workID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound("work item not found")
		}

		if err := s.store.UpdateItem(ctx, tx, workID, id, req); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("can not add one item twice")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid item_id", nil)
			}
			return err
		}

		out, err = s.store.GetItem(ctx, tx, workID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ItemService) Delete(ctx context.Context, workID, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveWork(ctx, tx, workID); err != nil {
			return err
		}
		n, err := s.store.DeleteItem(ctx, tx, workID, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return rest.ErrNotFound("work item not found")
		}
		return nil
	})
}
