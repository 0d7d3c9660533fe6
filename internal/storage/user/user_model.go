package user

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User represents a user record. Password holds the bcrypt hash.
type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	CreatedAt time.Time
}

type UserCreate struct {
	Email    string
	Password string
}

//go:generate mockery --name IUserTable --inpackage --with-expecter
type IUserTable interface {
	Insert(ctx context.Context, create *UserCreate) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
