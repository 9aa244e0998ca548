package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"storekeeper-backend/internal/platform/db"
	"storekeeper-backend/internal/platform/rest"
	"storekeeper-backend/internal/users"
)

// 認証失敗の理由（ユーザ不在・パスワード不一致・無効化）は
// 列挙攻撃を避けるため呼び出し側から区別できないこと。
func errLogin() *rest.Error { return rest.ErrUnauthorized("login error") }

type Service struct {
	db     *sql.DB
	store  *Store
	users  *users.Service
	secret []byte
	ttl    time.Duration
}

func NewService(conn *sql.DB, usersSvc *users.Service, cfg db.SessionConfig) *Service {
	return &Service{
		db:     conn,
		store:  NewStore(),
		users:  usersSvc,
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TTLHours) * time.Hour,
	}
}

func newSessionID() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Login は認証に成功すればセッション行を作りJWTトークンを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*users.User, string, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if u == nil || u.Disabled {
		return nil, "", errLogin()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", errLogin()
	}

	sid, err := newSessionID()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:        sid,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	err = db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// 便乗掃除
		_ = s.store.DeleteExpired(ctx, tx, now)
		return s.store.Insert(ctx, tx, sess)
	})
	if err != nil {
		return nil, "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"sub": u.Username,
		"exp": sess.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}
	return u, signed, nil
}

// Current はトークンからセッションを解決し、紐づくユーザを返す。
// セッション行が消えている（ログアウト済み）・ユーザが無効化された場合も 401。
func (s *Service) Current(ctx context.Context, token string) (*users.User, error) {
	sid, err := s.parseSID(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.Get(ctx, s.db, sid)
	if err != nil {
		return nil, err
	}
	if sess == nil || time.Now().After(sess.ExpiresAt) {
		return nil, rest.ErrUnauthorized("session expired or revoked")
	}

	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Disabled {
		return nil, rest.ErrUnauthorized("session expired or revoked")
	}
	return u, nil
}

// Logout は冪等。トークンが無効でもエラーにしない。
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, err := s.parseSID(token)
	if err != nil {
		return nil
	}
	return s.store.Delete(ctx, s.db, sid)
}

func (s *Service) parseSID(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// alg 固定（none攻撃とか回避）
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || token == nil || !token.Valid {
		return "", rest.ErrUnauthorized("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", rest.ErrUnauthorized("invalid session token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", rest.ErrUnauthorized("invalid session token")
	}
	return sid, nil
}
