package user

import (
	"context"
	"strings"

	"github.com/hsm-gustavo/account-api/internal/db"
)

type UserService struct {
	store db.UserStore
}

func NewUserService(store db.UserStore) *UserService {
	return &UserService{store: store}
}

// CreateUser stores u and returns it with its store-assigned id. A blank
// ProfilePicture is replaced with db.DefaultProfilePicture.
func (s *UserService) CreateUser(ctx context.Context, u *db.User) (*db.User, error) {
	if strings.TrimSpace(u.ProfilePicture) == "" {
		u.ProfilePicture = db.DefaultProfilePicture
	}
	return s.store.Insert(ctx, u)
}

// GetUserByEmail returns the full record, password digest included.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	return s.store.FindByEmail(ctx, email)
}

// GetUserByID returns the public record; PasswordHash is always empty.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*db.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *UserService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
