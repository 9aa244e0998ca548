package users

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"

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

func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.store.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *ToResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint64) (*UserResponse, error) {
	u, err := s.store.Get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, rest.ErrNotFound("user not found")
	}
	return ToResponse(u), nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Admin:        req.Admin,
		Disabled:     req.Disabled,
	}

	err = db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		id, err := s.store.Insert(ctx, tx, u)
		if err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("username already exists")
			}
			return err
		}
		u.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(u), nil
}

func (s *Service) Update(ctx context.Context, id uint64, req UpdateUserRequest) (*UserResponse, error) {
	var out *UserResponse
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		current, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return rest.ErrNotFound("user not found")
		}

		var passwordHash *string
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			h := string(hash)
			passwordHash = &h
		}

		if _, err := s.store.Update(ctx, tx, id, req, passwordHash); err != nil {
			if db.IsDuplicate(err) {
				return rest.ErrConflict("username already exists")
			}
			return err
		}

		updated, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		out = ToResponse(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id uint64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		n, err := s.store.Delete(ctx, tx, id)
		if err != nil {
			if db.IsReferenced(err) {
				return rest.ErrConflict("user is referenced by other records")
			}
			return err
		}
		if n == 0 {
			return rest.ErrNotFound("user not found")
		}
		return nil
	})
}

// ===== セッション層向け =====

// FindByUsername はハッシュ込みの行を返す（存在しなければ nil, nil）。
func (s *Service) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.store.GetByUsername(ctx, s.db, username)
}

func (s *Service) FindByID(ctx context.Context, id uint64) (*User, error) {
	return s.store.Get(ctx, s.db, id)
}
