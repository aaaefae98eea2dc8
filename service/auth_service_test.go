// service/auth_service_test.go
package service

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"student-records-api/logger"
	"student-records-api/model"
	"student-records-api/repository"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeUserRepo is an in-memory credential store with the same contract as
// the real repository: ErrDuplicate on a taken username, sql.ErrNoRows on
// an unknown one.
type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.Username] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func TestAuthService_RegisterThenAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	authService := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	user, err := authService.Register(ctx, "alice", "p")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "p", user.Password, "stored password must be a hash")

	subject, err := authService.Authenticate(ctx, "alice", "p")
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	authService := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := authService.Register(ctx, "", "password")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = authService.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	authService := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := authService.Register(ctx, "alice", "first-password")
	assert.NoError(t, err)

	_, err = authService.Register(ctx, "alice", "second-password")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// The first registration is left intact.
	subject, err := authService.Authenticate(ctx, "alice", "first-password")
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_Authenticate_FailuresIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	authService := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := authService.Register(ctx, "alice", "correct-password")
	assert.NoError(t, err)

	_, wrongPassword := authService.Authenticate(ctx, "alice", "wrong-password")
	_, unknownUser := authService.Authenticate(ctx, "nobody", "whatever")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestAuthService_IssueAndValidateToken(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")

	token, err := authService.IssueToken("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestAuthService_ValidateToken_Missing(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")

	_, err := authService.ValidateToken("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")
	base := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	authService.now = func() time.Time { return base }
	token, err := authService.IssueToken("alice")
	assert.NoError(t, err)

	// Still valid just before the 24-hour mark.
	authService.now = func() time.Time { return base.Add(23 * time.Hour) }
	subject, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)

	// Dead once the encoded expiry has passed.
	authService.now = func() time.Time { return base.Add(25 * time.Hour) }
	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_ValidateToken_TamperedSignature(t *testing.T) {
	authService := NewAuthService(nil, "test-secret")

	token, err := authService.IssueToken("alice")
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	subject, err := authService.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Empty(t, subject, "a tampered token must never yield a subject")
}

func TestAuthService_ValidateToken_WrongKey(t *testing.T) {
	issuer := NewAuthService(nil, "test-secret")
	verifier := NewAuthService(nil, "another-secret")

	token, err := issuer.IssueToken("alice")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
