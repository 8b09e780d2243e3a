package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is a file-backed store for local runs; it serves the same
// repositories as the MySQL and Postgres pools.
type SQLiteDB struct {
	conn *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	if path == "" {
		path = "realo.db"
	}
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &SQLiteDB{conn: conn}, nil
}

// Conn returns the underlying connection pool.
func (db *SQLiteDB) Conn() *sql.DB {
	return db.conn
}

func (db *SQLiteDB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the tables if they don't exist
func (db *SQLiteDB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		property_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		property_type TEXT NOT NULL DEFAULT '',
		is_for_sale INTEGER NOT NULL DEFAULT 0,
		is_for_rent INTEGER NOT NULL DEFAULT 0,
		price TEXT NOT NULL DEFAULT '',
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms INTEGER NOT NULL DEFAULT 0,
		square_feet INTEGER NOT NULL DEFAULT 0,
		has_ownership_document INTEGER NOT NULL DEFAULT 0,
		furniture TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS property_images (
		image_id INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id INTEGER NOT NULL REFERENCES properties(property_id),
		image_url TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_property_images_property_id ON property_images(property_id);
	`
	_, err := db.conn.Exec(query)
	return err
}
