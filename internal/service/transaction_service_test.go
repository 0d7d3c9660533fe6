package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

var manila = time.FixedZone("PHT", 8*60*60)

func newTestService(t *testing.T, now time.Time) (*TransactionService, *inlineProcessor) {
	t.Helper()
	store, proc := newMocks(t)
	svc := NewTransactionService(store, proc, manila, func() time.Time { return now })
	return svc, proc
}

func storedRow(owner uuid.UUID, typ, amount string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   owner,
		Type:     typ,
		Category: "Food",
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, proc := newTestService(t, time.Now())
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	wantDate := time.Date(2024, 3, 1, 9, 30, 0, 0, manila)

	proc.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.UserID == owner &&
			c.Type == "expense" &&
			c.Category == "Other" &&
			c.Amount.Equal(decimal.RequireFromString("42.50")) &&
			c.Note == "lunch" &&
			c.Date.Equal(wantDate)
	})).RunAndReturn(func(_ context.Context, c *transaction.TransactionCreate) (*transaction.Transaction, error) {
		return &transaction.Transaction{
			ID: id, UserID: c.UserID, Type: c.Type, Category: c.Category,
			Amount: c.Amount, Note: c.Note, Date: c.Date,
		}, nil
	})

	got, err := svc.CreateTransaction(context.Background(), owner, TransactionInput{
		Type:     "expense",
		Category: "   ",
		Amount:   decimal.RequireFromString("42.50"),
		Note:     "lunch",
		Date:     "2024-03-01T09:30",
	})

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, domain.Cents(4250), got.Amount)
	assert.Equal(t, domain.TypeExpense, got.Type)
	assert.Len(t, proc.processed, 1)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		input TransactionInput
		want  error
	}{
		{"bad type", TransactionInput{Type: "Expense", Amount: decimal.NewFromInt(1), Date: "2024-03-01"}, ErrInvalidType},
		{"missing date", TransactionInput{Type: "income", Amount: decimal.NewFromInt(1)}, ErrMissingDate},
		{"bad date", TransactionInput{Type: "income", Amount: decimal.NewFromInt(1), Date: "yesterday"}, ErrInvalidDate},
		{"negative amount", TransactionInput{Type: "income", Amount: decimal.NewFromInt(-1), Date: "2024-03-01"}, ErrInvalidAmount},
		{"oversized amount", TransactionInput{Type: "income", Amount: decimal.NewFromFloat(1e17), Date: "2024-03-01"}, ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, proc := newTestService(t, time.Now())
			_, err := svc.CreateTransaction(context.Background(), uuid.Nil, tc.input)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, proc.processed)
		})
	}
}

func TestCreateTransaction_StorageError(t *testing.T) {
	svc, proc := newTestService(t, time.Now())

	proc.transactions.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.CreateTransaction(context.Background(), uuid.Nil, TransactionInput{
		Type: "income", Amount: decimal.NewFromInt(10), Date: "2024-03-01",
	})

	assert.EqualError(t, err, "connection refused")
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, proc := newTestService(t, time.Now())
	id := uuid.Must(uuid.NewV4())

	proc.transactions.EXPECT().Delete(mock.Anything, id, uuid.Nil).Return(false, nil)

	err := svc.DeleteTransaction(context.Background(), uuid.Nil, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransaction_Success(t *testing.T) {
	svc, proc := newTestService(t, time.Now())
	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	proc.transactions.EXPECT().Delete(mock.Anything, id, owner).Return(true, nil)

	assert.NoError(t, svc.DeleteTransaction(context.Background(), owner, id))
}

// -- ListTransactions / ExportCSV / Summary tests --

func TestListTransactions_HistoryOrder(t *testing.T) {
	svc, proc := newTestService(t, time.Now())
	owner := uuid.Must(uuid.NewV4())

	older := storedRow(owner, "income", "100", time.Date(2024, 1, 5, 0, 0, 0, 0, manila))
	undated := storedRow(owner, "expense", "5", time.Time{})
	newer := storedRow(owner, "expense", "20", time.Date(2024, 2, 1, 0, 0, 0, 0, manila))

	proc.transactions.EXPECT().List(mock.Anything, &transaction.TransactionFilter{UserID: owner}).
		Return([]*transaction.Transaction{older, undated, newer}, nil)

	got, err := svc.ListTransactions(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	assert.Equal(t, undated.ID, got[2].ID)
}

func TestExportCSV(t *testing.T) {
	svc, proc := newTestService(t, time.Now())

	row := storedRow(uuid.Nil, "expense", "12.5", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	row.Note = "rice, eggs"
	proc.transactions.EXPECT().List(mock.Anything, mock.Anything).
		Return([]*transaction.Transaction{row}, nil)

	got, err := svc.ExportCSV(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Type,Category,Amount,Note\n2024-03-01T16:00:00+08:00,expense,Food,12.50,\"rice, eggs\"",
		string(got))
}

func TestSummary_UsesServiceClock(t *testing.T) {
	now := time.Date(2024, 2, 1, 1, 0, 0, 0, manila)
	svc, proc := newTestService(t, now)

	proc.transactions.EXPECT().List(mock.Anything, mock.Anything).Return([]*transaction.Transaction{
		storedRow(uuid.Nil, "income", "1000", time.Date(2024, 1, 5, 0, 0, 0, 0, manila)),
		storedRow(uuid.Nil, "expense", "300", time.Date(2024, 1, 10, 0, 0, 0, 0, manila)),
		storedRow(uuid.Nil, "expense", "50", time.Date(2024, 2, 1, 0, 0, 0, 0, manila)),
	}, nil)

	sum, err := svc.Summary(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Cents(100000), sum.Totals.Income)
	assert.Equal(t, domain.Cents(35000), sum.Totals.Expense)
	assert.Equal(t, domain.Cents(65000), sum.Totals.Balance)
	assert.Equal(t, domain.Cents(5000), sum.TodayExpense)
	require.Len(t, sum.Monthly, 2)
	assert.Equal(t, "2024-02", sum.Monthly[0].Month)
	require.Len(t, sum.Categories, 1)
	assert.Equal(t, domain.Cents(5000), sum.Categories[0].Amount)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, proc := newTestService(t, time.Now())

	proc.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("disk gone"))

	_, err := svc.ListTransactions(context.Background(), uuid.Nil)
	assert.EqualError(t, err, "disk gone")
}
