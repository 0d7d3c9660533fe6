package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

var _ transaction.ITransactionTable = (*transactionTable)(nil)
var _ transaction.ITransactionTable = (*autoTransactions)(nil)

type transactionTable struct {
	doc *document
	now func() time.Time
}

// List returns the records of filter.UserID; a nil filter returns every record.
func (t *transactionTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	result := make([]*transaction.Transaction, 0, len(t.doc.Transactions))
	for i := range t.doc.Transactions {
		rec := &t.doc.Transactions[i]
		if filter != nil && rec.owner() != filter.UserID {
			continue
		}
		result = append(result, recordToTransaction(rec))
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Date, result[j].Date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return result, nil
}

func (t *transactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "filestore: generate id")
	}

	rec := transactionRecord{
		ID:        id.String(),
		Type:      create.Type,
		Category:  domain.NormalizeCategory(create.Category),
		Amount:    create.Amount,
		Note:      create.Note,
		Date:      fileTime{Time: create.Date},
		CreatedAt: fileTime{Time: t.now()},
	}
	if create.UserID != uuid.Nil {
		owner := create.UserID
		rec.UserID = &owner
	}
	t.doc.Transactions = append(t.doc.Transactions, rec)

	return recordToTransaction(&rec), nil
}

func (t *transactionTable) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	for i := range t.doc.Transactions {
		rec := &t.doc.Transactions[i]
		if recordID(rec.ID) != id || rec.owner() != userID {
			continue
		}
		t.doc.Transactions = append(t.doc.Transactions[:i:i], t.doc.Transactions[i+1:]...)
		return true, nil
	}
	return false, nil
}

func recordToTransaction(rec *transactionRecord) *transaction.Transaction {
	return &transaction.Transaction{
		ID:        recordID(rec.ID),
		UserID:    rec.owner(),
		Type:      rec.Type,
		Category:  rec.Category,
		Amount:    rec.Amount,
		Note:      rec.Note,
		Date:      rec.Date.Time,
		CreatedAt: rec.CreatedAt.Time,
	}
}

// autoTransactions reads the committed document and wraps each mutation in its own Tx.
type autoTransactions struct {
	store *Store
}

func (a *autoTransactions) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	return (&transactionTable{doc: a.store.snapshot(), now: a.store.now}).List(ctx, filter)
}

func (a *autoTransactions) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	created, err := tx.Transactions().Insert(ctx, create)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (a *autoTransactions) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return false, err
	}
	deleted, err := tx.Transactions().Delete(ctx, id, userID)
	if err != nil || !deleted {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
