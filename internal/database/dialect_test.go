package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind_Postgres(t *testing.T) {
	query := `INSERT INTO users (name, specialty) VALUES (?, ?)`
	got := DialectPostgres.Rebind(query)
	assert.Equal(t, `INSERT INTO users (name, specialty) VALUES ($1, $2)`, got)
}

func TestRebind_NoPlaceholders(t *testing.T) {
	query := `SELECT id FROM users`
	assert.Equal(t, query, DialectPostgres.Rebind(query))
}

func TestRebind_MySQLAndSQLiteUntouched(t *testing.T) {
	query := `DELETE FROM property_images WHERE property_id = ?`
	assert.Equal(t, query, DialectMySQL.Rebind(query))
	assert.Equal(t, query, DialectSQLite.Rebind(query))
}

func TestSupportsLastInsertID(t *testing.T) {
	assert.True(t, DialectMySQL.SupportsLastInsertID())
	assert.True(t, DialectSQLite.SupportsLastInsertID())
	assert.False(t, DialectPostgres.SupportsLastInsertID())
}
