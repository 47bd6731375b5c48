package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/belandja/commerce-api/internal/domains/users/domain"
	"github.com/belandja/commerce-api/internal/domains/users/ports"
	"github.com/belandja/commerce-api/internal/platform/auth"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens *auth.Manager
}

func NewService(repo ports.Repository, tokens *auth.Manager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new account with the default user role.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), fullName, email, password)
	if err != nil {
		return nil, err
	}
	user.Roles = []string{"user"}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, ports.ErrEmailTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

// Login verifies credentials and issues a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return "", nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", nil, ports.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ports.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetByID returns the account for the given identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies profile changes for the authenticated user.
func (s *Service) UpdateProfile(ctx context.Context, id, fullName string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetFullName(fullName); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}
