package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Charusm03/todo-app/internal/auth"
	"github.com/Charusm03/todo-app/internal/config"
	"github.com/Charusm03/todo-app/internal/dto"
	"github.com/Charusm03/todo-app/internal/model"
	"github.com/Charusm03/todo-app/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stub ─────────────────────────────────────────────────

type stubUserRepo struct {
	users []*model.User
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users = append(r.users, u)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{JWTSecret: testSecret, JWTExpirationHours: 24}
}

func registerReq(username, email string) dto.RegisterRequest {
	return dto.RegisterRequest{Username: username, Email: email, Password: "secret123"}
}

// ── Tests: Register ───────────────────────────────────────────────────────────

func TestRegister_DefaultsToEmployee(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "employee", resp.User.Role)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
}

func TestRegister_ExplicitRole(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	req := registerReq("boss", "boss@example.com")
	req.Role = "manager"
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.User.Role)
}

func TestRegister_UnknownRoleRejected(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	req := registerReq("eve", "eve@example.com")
	req.Role = "superuser"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Empty(t, repo.users, "no row must be written on rejection")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	// Same email, different case and username: still a conflict, still one row.
	_, err = svc.Register(context.Background(), registerReq("alice2", "Alice@Example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.users, 1)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq("alice", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, repo.users, 1)
}

func TestRegister_TokenCarriesClaims(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	req := registerReq("alice", "alice@example.com")
	req.Role = "admin"
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, policy.RoleAdmin, claims.Role)
}

// ── Tests: Login ──────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())
	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())
	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "alice@example.com", Password: "wrongpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tests: ListUsers ──────────────────────────────────────────────────────────

func TestListUsers(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewAuthService(repo, newTestCfg())
	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), registerReq("bob", "bob@example.com"))
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
