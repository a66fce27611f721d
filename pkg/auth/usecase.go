package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, role, password string) error
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

type LoginResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
	cost   int
}

// NewAuthService returns default implementation of AuthUseCase.
// cost is the bcrypt work factor used when hashing new passwords.
func NewAuthService(repo UserRepository, tokens TokenGenerator, cost int) AuthUseCase {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{repo: repo, tokens: tokens, cost: cost}
}

func (s *authService) Register(ctx context.Context, name, email, role, password string) error {
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}

	// If user exists, fail fast (best-effort check). The unique constraint
	// in the store is the authoritative guard against a concurrent insert.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}

	user := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email keeps its own error so the handler can
		// distinguish it from a wrong password.
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}
