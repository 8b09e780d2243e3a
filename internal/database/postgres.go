package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname, sslmode string) (*DB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the tables if they don't exist
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		property_id SERIAL PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		city VARCHAR(100) NOT NULL DEFAULT '',
		property_type VARCHAR(50) NOT NULL DEFAULT '',
		is_for_sale BOOLEAN NOT NULL DEFAULT FALSE,
		is_for_rent BOOLEAN NOT NULL DEFAULT FALSE,
		price VARCHAR(100) NOT NULL DEFAULT '',
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms INTEGER NOT NULL DEFAULT 0,
		square_feet INTEGER NOT NULL DEFAULT 0,
		has_ownership_document BOOLEAN NOT NULL DEFAULT FALSE,
		furniture VARCHAR(100) NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude DOUBLE PRECISION NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS property_images (
		image_id SERIAL PRIMARY KEY,
		property_id INTEGER NOT NULL REFERENCES properties(property_id),
		image_url VARCHAR(1000) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		specialty VARCHAR(200) NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_property_images_property_id ON property_images(property_id);
	`
	_, err := db.conn.Exec(query)
	return err
}
