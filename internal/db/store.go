package db

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists users keyed by a unique email.
//
// FindByEmail returns the full record including the password digest and is
// meant for credential checks only. FindByID never populates PasswordHash.
// Both return ErrUserNotFound when nothing matches; Insert returns
// ErrDuplicateEmail when the email is taken.
type UserStore interface {
	Insert(ctx context.Context, u *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
