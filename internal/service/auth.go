package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/showtrack/showtrack-go/internal/crypto"
	"github.com/showtrack/showtrack-go/internal/model"
	"github.com/showtrack/showtrack-go/internal/repository"
)

// AuthService handles registration, login and bearer token resolution.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account and returns its id and access token.
//
// Email conflicts are reported before name conflicts. The pre-checks and
// the insert are not atomic; the store's unique indexes catch a concurrent
// registration and it is reported as the same conflict.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return model.RegisterResponse{}, ErrNameRequired
	case strings.TrimSpace(req.Email) == "":
		return model.RegisterResponse{}, ErrEmailRequired
	case req.Password == "":
		return model.RegisterResponse{}, ErrPasswordRequired
	}

	if err := s.ensureFree(ctx, s.users.GetByEmail, req.Email, ErrEmailConflict); err != nil {
		return model.RegisterResponse{}, err
	}
	if err := s.ensureFree(ctx, s.users.GetByName, req.Name, ErrNameConflict); err != nil {
		return model.RegisterResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.RegisterResponse{}, fail(ErrCreateFailed, err)
	}

	token, err := crypto.NewAccessToken()
	if err != nil {
		return model.RegisterResponse{}, fail(ErrCreateFailed, err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AccessToken:  token,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.RegisterResponse{}, ErrEmailConflict
		case errors.Is(err, repository.ErrDuplicateName):
			return model.RegisterResponse{}, ErrNameConflict
		default:
			slog.ErrorContext(ctx, "creating user failed", "error", err)
			return model.RegisterResponse{}, fail(ErrCreateFailed, err)
		}
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)

	return model.RegisterResponse{
		UserID:      user.ID,
		AccessToken: user.AccessToken,
	}, nil
}

// ensureFree fails with conflict if lookup finds a user for value.
func (s *AuthService) ensureFree(
	ctx context.Context,
	lookup func(context.Context, string) (*model.User, error),
	value string,
	conflict error,
) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return conflict
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		slog.ErrorContext(ctx, "user lookup failed", "error", err)
		return fail(ErrCreateFailed, err)
	}
}

// Login verifies a name and password. Every failure, including storage
// errors, is reported as ErrNotFound so callers cannot tell an unknown name
// from a wrong password.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Name == "" || req.Password == "" {
		return model.LoginResponse{}, ErrNotFound
	}

	user, err := s.users.GetByName(ctx, req.Name)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.ErrorContext(ctx, "login lookup failed", "error", err)
		}
		return model.LoginResponse{}, ErrNotFound
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.ErrorContext(ctx, "password verification failed", "user_id", user.ID, "error", err)
		return model.LoginResponse{}, ErrNotFound
	}
	if !match {
		return model.LoginResponse{}, ErrNotFound
	}

	return model.LoginResponse{
		UserID:      user.ID,
		UserName:    user.Name,
		AccessToken: user.AccessToken,
	}, nil
}

// Authenticate resolves a bearer token to its user. Unknown tokens and
// lookup failures both yield ErrForbidden.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrForbidden
	}

	user, err := s.users.GetByAccessToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			slog.ErrorContext(ctx, "token lookup failed", "error", err)
		}
		return nil, ErrForbidden
	}

	return user, nil
}

// WhoAmI describes an already authenticated user.
func (s *AuthService) WhoAmI(user *model.User) model.WhoAmIResponse {
	return model.WhoAmIResponse{
		Name:       user.Name,
		UserID:     user.ID,
		Authorized: true,
	}
}

// ResetUsers deletes every account. It backs the RESET_DB startup flag.
func (s *AuthService) ResetUsers(ctx context.Context) (int64, error) {
	n, err := s.users.DeleteAll(ctx)
	if err != nil {
		return 0, fail(ErrUnexpected, err)
	}
	return n, nil
}
