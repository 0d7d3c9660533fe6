package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

const DefaultCategory = "Other"

var ErrInvalidType = errors.New("invalid type")

// Transaction is a single dated income or expense record.
// A zero Date means the stored value was missing or unparseable.
type Transaction struct {
	ID        uuid.UUID
	Owner     uuid.UUID
	Type      TransactionType
	Category  string
	Amount    Cents
	Note      string
	Date      time.Time
	CreatedAt time.Time
}

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	}
	return "", ErrInvalidType
}

func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
