package repository

import (
	"context"
	"database/sql"
	"fmt"

	"realo-api/internal/database"
	"realo-api/internal/models"
)

type UserRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewUserRepository(db *sql.DB, dialect database.Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// List retrieves all users, newest id first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, specialty FROM users ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Specialty); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID retrieves a single user, or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := r.dialect.Rebind(`SELECT id, name, specialty FROM users WHERE id = ?`)

	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Specialty)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// Create inserts a user and returns the generated id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int, error) {
	query := `INSERT INTO users (name, specialty) VALUES (?, ?)`

	if !r.dialect.SupportsLastInsertID() {
		var id int
		err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query+" RETURNING id"), u.Name, u.Specialty).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert user: %w", err)
		}
		return id, nil
	}

	result, err := r.db.ExecContext(ctx, query, u.Name, u.Specialty)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return int(id), nil
}

// Update overwrites the user's mutable columns and returns rows matched.
func (r *UserRepository) Update(ctx context.Context, id int, u *models.User) (int64, error) {
	query := r.dialect.Rebind(`UPDATE users SET name = ?, specialty = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, u.Name, u.Specialty, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

// Delete removes a user and returns rows deleted.
func (r *UserRepository) Delete(ctx context.Context, id int) (int64, error) {
	query := r.dialect.Rebind(`DELETE FROM users WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}
