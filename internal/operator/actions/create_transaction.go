package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

type CreateTransaction struct {
	UserID   uuid.UUID
	Type     string
	Category string
	Amount   decimal.Decimal
	Note     string
	Date     time.Time

	// Created is set once the action commits.
	Created *transaction.Transaction
}

func (t *CreateTransaction) Name() string {
	return "create_transaction"
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	storageCreate := &transaction.TransactionCreate{
		UserID:   t.UserID,
		Type:     t.Type,
		Category: t.Category,
		Amount:   t.Amount,
		Note:     t.Note,
		Date:     t.Date,
	}
	created, err := writer.Transactions.Insert(ctx, storageCreate)
	if err != nil {
		return err
	}

	t.Created = created
	return nil
}
