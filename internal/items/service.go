package items

import (
	"context"
	"database/sql"

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

func (s *Service) List(ctx context.Context) ([]ItemResponse, error) {
	return s.store.List(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, id uint64) (*ItemResponse, error) {
	item, err := s.store.Get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, rest.ErrNotFound("item not found")
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	var out *ItemResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.Insert(ctx, tx, req)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("item name already exists")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid vendor_id or unit_id", nil)
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

func (s *Service) Update(ctx context.Context, id uint64, req UpdateItemRequest) (*ItemResponse, error) {
	var out *ItemResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound("item not found")
		}

		if err := s.store.Update(ctx, tx, id, req); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("item name already exists")
			}
			if db.IsBadReference(err) {
				return rest.ErrValidation("invalid vendor_id or unit_id", nil)
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

// バーコードはスキーマ側で ON DELETE CASCADE。
// work/acquisition/stocktaking の明細から参照されている間は消せない。
func (s *Service) Delete(ctx context.Context, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.store.Delete(ctx, tx, id)
		if err != nil {
			if db.IsReferenced(err) {
				return rest.ErrConflict("item is referenced by other records")
			}
			return err
		}
		if n == 0 {
			return rest.ErrNotFound("item not found")
		}
		return nil
	})
}

// ===== nested: /items/:id/barcodes =====

type BarcodeService struct {
	db    *sql.DB
	store *Store
}

func NewBarcodeService(conn *sql.DB) *BarcodeService {
	return &BarcodeService{db: conn, store: NewStore()}
}

// 親itemが無ければ子に触る前に404を返す。
func (s *BarcodeService) resolveItem(ctx context.Context, q db.DBTX, itemID uint64) error {
	item, err := s.store.Get(ctx, q, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return rest.ErrNotFound("item not found")
	}
	return nil
}

func (s *BarcodeService) List(ctx context.Context, itemID uint64) ([]BarcodeResponse, error) {
	if err := s.resolveItem(ctx, s.db, itemID); err != nil {
		return nil, err
	}
	return s.store.ListBarcodes(ctx, s.db, itemID)
}

func (s *BarcodeService) Get(ctx context.Context, itemID, id uint64) (*BarcodeResponse, error) {
	if err := s.resolveItem(ctx, s.db, itemID); err != nil {
		return nil, err
	}
	b, err := s.store.GetBarcode(ctx, s.db, itemID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, rest.ErrNotFound("barcode not found")
	}
	return b, nil
}

func (s *BarcodeService) Create(ctx context.Context, itemID uint64, req CreateBarcodeRequest) (*BarcodeResponse, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	var out *BarcodeResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveItem(ctx, tx, itemID); err != nil {
			return err
		}
		id, err := s.store.InsertBarcode(ctx, tx, itemID, req.Barcode, quantity, req.Main)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("barcode already exists for this item")
			}
			return err
		}
		out, err = s.store.GetBarcode(ctx, tx, itemID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BarcodeService) Update(ctx context.Context, itemID, id uint64, req UpdateBarcodeRequest) (*BarcodeResponse, error) {
	var out *BarcodeResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveItem(ctx, tx, itemID); err != nil {
			return err
		}
		current, err := s.store.GetBarcode(ctx, tx, itemID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound("barcode not found")
		}

		if err := s.store.UpdateBarcode(ctx, tx, itemID, id, req); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("barcode already exists for this item")
			}
			return err
		}

		out, err = s.store.GetBarcode(ctx, tx, itemID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BarcodeService) Delete(ctx context.Context, itemID, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if err := s.resolveItem(ctx, tx, itemID); err != nil {
			return err
		}
		n, err := s.store.DeleteBarcode(ctx, tx, itemID, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return rest.ErrNotFound("barcode not found")
		}
		return nil
	})
}
