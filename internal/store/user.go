package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a registered learner.
type User struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// UserRepo manages learner identities.
type UserRepo interface {
	// Create registers a learner and returns the stored record. An empty ID
	// gets a generated UUID.
	Create(ctx context.Context, user User) (User, error)

	// Get returns a learner by ID.
	Get(ctx context.Context, id string) (User, error)

	// List returns all learners ordered by name.
	List(ctx context.Context) ([]User, error)
}

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, user User) (User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *userRepo) Get(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ?`, id)

	var u User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
		}
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}
