package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Transaction represents a transaction record. A nil UserID is the unowned bucket.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Category  string
	Amount    decimal.Decimal
	Note      string
	Date      time.Time
	CreatedAt time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID   uuid.UUID
	Type     string
	Category string
	Amount   decimal.Decimal
	Note     string
	Date     time.Time
}

// TransactionFilter scopes a listing to one owner.
type TransactionFilter struct {
	UserID uuid.UUID
}

// ITransactionTable defines the interface for transaction storage operations.
// List returns the full owner-scoped snapshot ordered by date descending,
// ties in insertion order. Delete reports whether an owned record was removed.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter
type ITransactionTable interface {
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
}
