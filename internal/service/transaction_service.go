package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/operator/actions"
	"github.com/carson-networks/trackease/internal/report"
	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage   *storage.Storage
	processor Processor
	loc       *time.Location
	now       func() time.Time
}

func NewTransactionService(store *storage.Storage, processor Processor, loc *time.Location, now func() time.Time) *TransactionService {
	return &TransactionService{
		storage:   store,
		processor: processor,
		loc:       loc,
		now:       now,
	}
}

// Location is the zone used for day and month boundaries.
func (s *TransactionService) Location() *time.Location {
	return s.loc
}

// ListTransactions returns the owner's history, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, owner uuid.UUID) ([]domain.Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{UserID: owner})
	if err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := toDomainTransaction(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return report.History(txs), nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, owner uuid.UUID, input TransactionInput) (domain.Transaction, error) {
	txType, err := domain.ParseTransactionType(input.Type)
	if err != nil {
		return domain.Transaction{}, err
	}
	amount, err := domain.CentsFromDecimal(input.Amount)
	if err != nil {
		return domain.Transaction{}, ErrInvalidAmount
	}
	date, err := domain.ParseDate(input.Date, s.loc)
	if err != nil {
		return domain.Transaction{}, err
	}

	action := &actions.CreateTransaction{
		UserID:   owner,
		Type:     string(txType),
		Category: domain.NormalizeCategory(input.Category),
		Amount:   amount.Decimal(),
		Note:     input.Note,
		Date:     date,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return domain.Transaction{}, err
	}

	return toDomainTransaction(action.Created)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	err := s.processor.Process(ctx, &actions.DeleteTransaction{ID: id, UserID: owner})
	if errors.Is(err, transaction.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ExportCSV renders the owner's history in the export format.
func (s *TransactionService) ExportCSV(ctx context.Context, owner uuid.UUID) ([]byte, error) {
	txs, err := s.ListTransactions(ctx, owner)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, txs, s.loc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary computes the dashboard figures at the service clock.
func (s *TransactionService) Summary(ctx context.Context, owner uuid.UUID) (report.Summary, error) {
	txs, err := s.ListTransactions(ctx, owner)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(txs, s.now().In(s.loc)), nil
}
