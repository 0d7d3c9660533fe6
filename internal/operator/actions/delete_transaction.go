package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

// DeleteTransaction removes one record owned by UserID. A missing or foreign
// record yields transaction.ErrNotFound.
type DeleteTransaction struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (d *DeleteTransaction) Name() string {
	return "delete_transaction"
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Transactions.Delete(ctx, d.ID, d.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return transaction.ErrNotFound
	}
	return nil
}
