package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

type MySQLUserStore struct {
	db *sql.DB
}

var _ UserStore = (*MySQLUserStore)(nil)

func NewMySQLUserStore(db *sql.DB) *MySQLUserStore {
	return &MySQLUserStore{db: db}
}

func (s *MySQLUserStore) Insert(ctx context.Context, u *User) (*User, error) {
	stored := *u
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, phone, email, password_hash, profile_picture, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		stored.ID, stored.Name, stored.Phone, stored.Email, stored.PasswordHash, stored.ProfilePicture, stored.CreatedAt,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &stored, nil
}

func (s *MySQLUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, email, password_hash, profile_picture, created_at FROM users WHERE email = ?", email,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.ProfilePicture, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *MySQLUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, email, profile_picture, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.ProfilePicture, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (s *MySQLUserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *MySQLUserStore) Close(ctx context.Context) error {
	return s.db.Close()
}
