package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Charusm03/todo-app/internal/auth"
	"github.com/Charusm03/todo-app/internal/config"
	"github.com/Charusm03/todo-app/internal/dto"
	"github.com/Charusm03/todo-app/internal/model"
	"github.com/Charusm03/todo-app/internal/policy"
	"github.com/Charusm03/todo-app/internal/repository"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func mapUser(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	role := policy.Role(req.Role)
	if req.Role == "" {
		role = policy.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	// Explicit existence checks so duplicates come back as a descriptive
	// conflict instead of a raw unique-constraint error from the store.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.IssueToken(s.cfg.JWTSecret, user, s.tokenTTL())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    mapUser(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same message for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.cfg.JWTSecret, user, s.tokenTTL())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    mapUser(user),
	}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, mapUser(&users[i]))
	}
	return resp, nil
}

func (s *authService) tokenTTL() time.Duration {
	return time.Duration(s.cfg.JWTExpirationHours) * time.Hour
}
