package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hsm-gustavo/account-api/internal/api/user"
	"github.com/hsm-gustavo/account-api/internal/db"
	"github.com/hsm-gustavo/account-api/internal/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (n *recordingNotifier) Notify(ctx context.Context, msg mail.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) sent() []mail.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mail.Message(nil), n.msgs...)
}

func newTestService(t *testing.T) (*AuthService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return &AuthService{
		UserService: user.NewUserService(db.NewMemoryUserStore()),
		Notifier:    notifier,
		MailFrom:    "noreply@example.com",
		JWTSecret:   []byte("test-secret"),
		TTL:         DefaultTokenTTL,
	}, notifier
}

func TestHashPassword_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.NoError(t, svc.CheckPasswordHash("secret1", hash))
	assert.ErrorIs(t, svc.CheckPasswordHash("secret2", hash), bcrypt.ErrMismatchedHashAndPassword)
}

func TestGenerateAndParseJWT(t *testing.T) {
	svc, _ := newTestService(t)

	tok, err := svc.GenerateJWT("user-123")
	require.NoError(t, err)

	claims, err := svc.ParseJWT(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParseJWT_Expired(t *testing.T) {
	svc, _ := newTestService(t)
	svc.TTL = -time.Minute

	tok, err := svc.GenerateJWT("u1")
	require.NoError(t, err)

	_, err = svc.ParseJWT(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorContains(t, err, "expired")
}

func TestParseJWT_WrongSecret(t *testing.T) {
	svc, _ := newTestService(t)
	tok, err := svc.GenerateJWT("u2")
	require.NoError(t, err)

	other := &AuthService{JWTSecret: []byte("other-secret"), TTL: time.Hour}
	_, err = other.ParseJWT(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Malformed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ParseJWT("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_RejectsUnsignedToken(t *testing.T) {
	svc, _ := newTestService(t)

	claims := db.Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseJWT(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_RequiresExpiry(t *testing.T) {
	svc, _ := newTestService(t)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, db.Claims{UserID: "u4"}).SignedString(svc.JWTSecret)
	require.NoError(t, err)

	_, err = svc.ParseJWT(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRegister_StoresDigestAndNotifies(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	err := svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	stored, err := svc.UserService.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
	assert.Equal(t, db.DefaultProfilePicture, stored.ProfilePicture)

	sent := notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, mail.VerificationMessage("noreply@example.com", "a@x.com", "Ann"), sent[0])
}

func TestRegister_ValidationError(t *testing.T) {
	svc, notifier := newTestService(t)

	err := svc.Register(context.Background(), RegisterRequest{Email: "nope"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, notifier.sent())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, RegisterRequest{Name: "First", Email: "a@x.com", Password: "one"}))
	err := svc.Register(ctx, RegisterRequest{Name: "Second", Email: "a@x.com", Password: "two"})
	require.ErrorIs(t, err, db.ErrDuplicateEmail)

	stored, err := svc.UserService.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Name)
	assert.NoError(t, svc.CheckPasswordHash("one", stored.PasswordHash))
	assert.Len(t, notifier.sent(), 1)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "secret1"}))

	t.Run("success", func(t *testing.T) {
		tok, err := svc.Login(ctx, "a@x.com", "secret1")
		require.NoError(t, err)

		claims, err := svc.ParseJWT(tok)
		require.NoError(t, err)
		stored, err := svc.UserService.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		tok, err := svc.Login(ctx, "a@x.com", "secret2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, tok)
	})

	t.Run("unknown user", func(t *testing.T) {
		tok, err := svc.Login(ctx, "b@x.com", "secret1")
		require.ErrorIs(t, err, db.ErrUserNotFound)
		assert.Empty(t, tok)
	})
}

func TestRegisterAndLogin_LongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	long := strings.Repeat("a", 80)

	require.NoError(t, svc.Register(ctx, RegisterRequest{Email: "long@x.com", Password: long}))

	tok, err := svc.Login(ctx, "long@x.com", long)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	// only the first 72 bytes are significant
	_, err = svc.Login(ctx, "long@x.com", strings.Repeat("a", 72)+"different")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "long@x.com", strings.Repeat("a", 71))
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
