package service

import (
	"context"
	"testing"

	"github.com/carson-networks/trackease/internal/operator/actions"
	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/transaction"
	"github.com/carson-networks/trackease/internal/storage/user"
)

// inlineProcessor performs actions directly against the mocked tables.
type inlineProcessor struct {
	transactions *transaction.MockITransactionTable
	users        *user.MockIUserTable
	processed    []actions.IAction
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	p.processed = append(p.processed, action)
	noop := func() error { return nil }
	return action.Perform(ctx, storage.NewWriter(p.transactions, p.users, noop, noop))
}

func newMocks(t *testing.T) (*storage.Storage, *inlineProcessor) {
	t.Helper()
	txTable := transaction.NewMockITransactionTable(t)
	userTable := user.NewMockIUserTable(t)
	store := &storage.Storage{Reader: storage.Reader{Transactions: txTable, Users: userTable}}
	return store, &inlineProcessor{transactions: txTable, users: userTable}
}
