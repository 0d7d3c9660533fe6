package storage

import (
	"github.com/carson-networks/trackease/internal/storage/transaction"
	"github.com/carson-networks/trackease/internal/storage/user"
)

// Writer is a single unit of work. Its tables only see their own changes
// until Commit.
type Writer struct {
	Transactions transaction.ITransactionTable
	Users        user.IUserTable

	commit   func() error
	rollback func() error
}

func NewWriter(transactions transaction.ITransactionTable, users user.IUserTable, commit, rollback func() error) *Writer {
	return &Writer{
		Transactions: transactions,
		Users:        users,
		commit:       commit,
		rollback:     rollback,
	}
}

func (w *Writer) Commit() error {
	return w.commit()
}

func (w *Writer) Rollback() error {
	return w.rollback()
}
