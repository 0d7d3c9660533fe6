package service

import (
	"context"
	"errors"
	"strings"

	"github.com/carson-networks/trackease/internal/auth"
	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/operator/actions"
	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/user"
)

var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAuthDisabled       = errors.New("authentication is disabled")
)

type UserService struct {
	storage    *storage.Storage
	processor  Processor
	tokens     *auth.TokenIssuer
	bcryptCost int
}

func NewUserService(store *storage.Storage, processor Processor, tokens *auth.TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		storage:    store,
		processor:  processor,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	action := &actions.RegisterUser{Email: email, PasswordHash: hash}
	if err := s.processor.Process(ctx, action); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return toDomainUser(action.Created), nil
}

// Login checks the credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if s.tokens == nil {
		return "", ErrAuthDisabled
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrMissingCredentials
	}

	found, err := s.storage.Users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(found.Password, password) {
		return "", ErrInvalidPassword
	}

	return s.tokens.Issue(found.ID, found.Email)
}

func toDomainUser(u *user.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
	}
}
