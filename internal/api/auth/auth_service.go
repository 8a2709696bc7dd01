package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hsm-gustavo/account-api/internal/api/user"
	"github.com/hsm-gustavo/account-api/internal/db"
	"github.com/hsm-gustavo/account-api/internal/mail"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultTokenTTL is how long an issued session token is accepted.
	DefaultTokenTTL = time.Hour

	// PasswordCost is the bcrypt work factor for stored digests.
	PasswordCost = 10

	// maxPasswordBytes is the most bcrypt reads; longer input is truncated.
	maxPasswordBytes = 72
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("no token")
)

// VerificationNotifier accepts messages for best-effort delivery.
type VerificationNotifier interface {
	Notify(ctx context.Context, msg mail.Message)
}

type AuthService struct {
	UserService *user.UserService
	Notifier    VerificationNotifier
	MailFrom    string
	JWTSecret   []byte
	TTL         time.Duration
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(password), PasswordCost)
	return string(hashed), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password))
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (s *AuthService) GenerateJWT(userID string) (string, error) {
	now := time.Now()
	claims := db.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// ParseJWT verifies tokenStr and returns its claims. Every failure wraps
// ErrInvalidToken.
func (s *AuthService) ParseJWT(tokenStr string) (*db.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &db.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("alg not allowed")
		}
		return s.JWTSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c, ok := token.Claims.(*db.Claims); ok && token.Valid && c.UserID != "" {
		return c, nil
	}
	return nil, ErrInvalidToken
}

// Register validates req, stores the user with a hashed password and queues
// the verification email. The email's outcome never affects the result.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if err := validateRegisterRequest(req); err != nil {
		return err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	created, err := s.UserService.CreateUser(ctx, &db.User{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          strings.TrimSpace(req.Email),
		PasswordHash:   hash,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}

	s.Notifier.Notify(ctx, mail.VerificationMessage(s.MailFrom, created.Email, created.Name))
	return nil
}

// Login checks the credentials and returns a signed session token.
// Returns db.ErrUserNotFound or ErrInvalidCredentials for client mistakes.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.UserService.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}

	if err := s.CheckPasswordHash(password, u.PasswordHash); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	token, err := s.GenerateJWT(u.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
