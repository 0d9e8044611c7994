package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type userRepository struct {
	q querier
}

var _ UserRepository = (*userRepository)(nil)

func NewUserRepository(db *DB) UserRepository {
	return &userRepository{q: db.DB}
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*User, error) {
	var user User
	var updatedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, `
		SELECT id, username, last_name, email, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID, &user.Username, &user.LastName, &user.Email, &user.PasswordHash,
		&user.IsAdmin, &user.CreatedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.UpdatedAt = timePtr(updatedAt)
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *userRepository) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (username, last_name, email, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.Username, user.LastName, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}
