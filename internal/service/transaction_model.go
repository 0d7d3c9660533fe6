package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

var (
	ErrInvalidType   = domain.ErrInvalidType
	ErrMissingDate   = domain.ErrMissingDate
	ErrInvalidDate   = domain.ErrInvalidDate
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("transaction not found")
)

// TransactionInput is an unvalidated create request. Date is the raw
// client value and is parsed in the service location.
type TransactionInput struct {
	Type     string
	Category string
	Amount   decimal.Decimal
	Note     string
	Date     string
}

func toDomainTransaction(row *transaction.Transaction) (domain.Transaction, error) {
	amount, err := domain.CentsFromDecimal(row.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		ID:        row.ID,
		Owner:     row.UserID,
		Type:      domain.TransactionType(row.Type),
		Category:  row.Category,
		Amount:    amount,
		Note:      row.Note,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
	}, nil
}
