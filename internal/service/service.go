package service

import (
	"context"
	"time"

	"github.com/carson-networks/trackease/internal/auth"
	"github.com/carson-networks/trackease/internal/operator/actions"
	"github.com/carson-networks/trackease/internal/storage"
)

// Processor runs a mutation to completion. The operator delegator is the
// production implementation.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Options carries the config-derived knobs of the services.
type Options struct {
	Location   *time.Location
	BcryptCost int
	Clock      func() time.Time
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	User        *UserService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, processor Processor, tokens *auth.TokenIssuer, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		Transaction: NewTransactionService(store, processor, opts.Location, opts.Clock),
		User:        NewUserService(store, processor, tokens, opts.BcryptCost),
	}
}
