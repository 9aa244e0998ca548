package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// テスト用スキーマ（SQLite方言）。本番スキーマは config/schema.sql を参照。
const testSchema = `
CREATE TABLE users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email         TEXT NOT NULL,
	admin         INTEGER NOT NULL DEFAULT 0,
	disabled      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE sessions (
	id         TEXT PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL
);

CREATE TABLE vendors (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE units (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	unit TEXT NOT NULL UNIQUE
);

CREATE TABLE customers (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE items (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL UNIQUE,
	vendor_id      INTEGER NOT NULL REFERENCES vendors(id),
	article_number INTEGER,
	quantity       INTEGER NOT NULL,
	unit_id        INTEGER NOT NULL REFERENCES units(id)
);

CREATE TABLE barcodes (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	barcode  TEXT NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	item_id  INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	main     INTEGER NOT NULL DEFAULT 0,
	UNIQUE (item_id, barcode)
);

CREATE TABLE works (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id              INTEGER NOT NULL REFERENCES customers(id),
	comment                  TEXT,
	outbound_close_timestamp TIMESTAMP,
	outbound_close_user_id   INTEGER REFERENCES users(id),
	return_close_timestamp   TIMESTAMP,
	return_close_user_id     INTEGER REFERENCES users(id)
);

CREATE TABLE work_items (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	work_id           INTEGER NOT NULL REFERENCES works(id) ON DELETE CASCADE,
	item_id           INTEGER NOT NULL REFERENCES items(id),
	outbound_quantity INTEGER NOT NULL,
	return_quantity   INTEGER,
	UNIQUE (work_id, item_id)
);

CREATE TABLE acquisitions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TIMESTAMP NOT NULL,
	comment   TEXT
);

CREATE TABLE acquisition_items (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	acquisition_id INTEGER NOT NULL REFERENCES acquisitions(id) ON DELETE CASCADE,
	item_id        INTEGER NOT NULL REFERENCES items(id),
	quantity       INTEGER NOT NULL,
	UNIQUE (acquisition_id, item_id)
);

CREATE TABLE stocktakings (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TIMESTAMP NOT NULL,
	comment   TEXT
);

CREATE TABLE stocktaking_items (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	stocktaking_id INTEGER NOT NULL REFERENCES stocktakings(id) ON DELETE CASCADE,
	item_id        INTEGER NOT NULL REFERENCES items(id),
	quantity       INTEGER NOT NULL,
	UNIQUE (stocktaking_id, item_id)
);
`

// NewTestDB はスキーマ適用済みのインメモリSQLiteを返す。
// ストア層のSQLは ? プレースホルダ＋標準関数のみなので両方言で動く。
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("テストDBのオープン失敗: %v", err)
	}

	// インメモリDBはコネクション毎に別物になるため1本に固定する
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		t.Fatalf("PRAGMA設定失敗: %v", err)
	}
	if _, err := conn.Exec(testSchema); err != nil {
		conn.Close()
		t.Fatalf("テストスキーマの適用失敗: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}
