package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/report"
	"github.com/carson-networks/trackease/internal/service"
)

// mockTransactionService is a mock for every transaction handler dependency.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, owner uuid.UUID) ([]domain.Transaction, error) {
	args := m.Called(ctx, owner)
	txs, _ := args.Get(0).([]domain.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, owner uuid.UUID, input service.TransactionInput) (domain.Transaction, error) {
	args := m.Called(ctx, owner, input)
	tx, _ := args.Get(0).(domain.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func (m *mockTransactionService) ExportCSV(ctx context.Context, owner uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, owner)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockTransactionService) Summary(ctx context.Context, owner uuid.UUID) (report.Summary, error) {
	args := m.Called(ctx, owner)
	sum, _ := args.Get(0).(report.Summary)
	return sum, args.Error(1)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc).Register(api)
	NewCreateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	NewExportTransactionsHandler(svc).Register(api)
	NewSummaryHandler(svc).Register(api)
	RegisterCategories(api)
	return api
}

func sampleTransaction() domain.Transaction {
	return domain.Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		Type:      domain.TypeExpense,
		Category:  "Food",
		Amount:    1250,
		Note:      "lunch",
		Date:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
	}
}

// -- list --

func TestHTTP_ListTransactions_Success(t *testing.T) {
	tx := sampleTransaction()
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, uuid.Nil).Return([]domain.Transaction{tx}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/transactions")

	require.Equal(t, http.StatusOK, resp.Code)
	var body []Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, tx.ID.String(), body[0].ID)
	assert.Equal(t, "expense", body[0].Type)
	assert.Equal(t, 12.5, body[0].Amount)
	assert.Equal(t, "2024-03-01T12:00:00Z", body[0].Date)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_EmptyIsArray(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, uuid.Nil).Return([]domain.Transaction{}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/transactions")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())
}

func TestHTTP_ListTransactions_ServiceErrorIsHidden(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything).Return(nil, errors.New("disk on fire"))

	resp := newTestAPI(t, mockSvc).Get("/api/transactions")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "disk on fire")
}

// -- create --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	tx := sampleTransaction()
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, uuid.Nil, mock.MatchedBy(func(in service.TransactionInput) bool {
		return in.Type == "expense" &&
			in.Category == "Food" &&
			in.Amount.Equal(decimal.RequireFromString("12.5")) &&
			in.Note == "lunch" &&
			in.Date == "2024-03-01"
	})).Return(tx, nil)

	resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type":     "expense",
		"category": "Food",
		"amount":   12.5,
		"note":     "lunch",
		"date":     "2024-03-01",
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, tx.ID.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"invalid type", service.ErrInvalidType, "Invalid type"},
		{"missing date", service.ErrMissingDate, "Date is required"},
		{"invalid date", service.ErrInvalidDate, "Invalid date"},
		{"invalid amount", service.ErrInvalidAmount, "Invalid amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := new(mockTransactionService)
			mockSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil, tc.err)

			resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
				"type":   "bogus",
				"amount": 1,
			})

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), tc.message)
		})
	}
}

func TestHTTP_CreateTransaction_MissingAmount(t *testing.T) {
	mockSvc := new(mockTransactionService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type": "income",
		"date": "2024-03-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_NegativeAmount(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type":   "income",
		"amount": -5,
		"date":   "2024-03-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_AmountAboveMaximum(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type":   "income",
		"amount": 1e17,
		"date":   "2024-03-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type":   "income",
		"amount": 10,
		"date":   "2024-03-01",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}

// -- delete --

func TestHTTP_DeleteTransaction_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, uuid.Nil, id).Return(nil)

	resp := newTestAPI(t, mockSvc).Delete("/api/transactions/" + id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Empty(t, resp.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, uuid.Nil, id).Return(service.ErrNotFound)

	resp := newTestAPI(t, mockSvc).Delete("/api/transactions/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Transaction not found")
}

func TestHTTP_DeleteTransaction_MalformedID(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Delete("/api/transactions/1700000000000")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertNotCalled(t, "DeleteTransaction")
}

// -- export --

func TestHTTP_Export(t *testing.T) {
	csv := "Date,Type,Category,Amount,Note\n,income,Other,1.00,"
	mockSvc := new(mockTransactionService)
	mockSvc.On("ExportCSV", mock.Anything, uuid.Nil).Return([]byte(csv), nil)

	resp := newTestAPI(t, mockSvc).Get("/api/export")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=transactions.csv", resp.Header().Get("Content-Disposition"))
	assert.Equal(t, csv, resp.Body.String())
}

// -- summary --

func TestHTTP_Summary(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Summary", mock.Anything, uuid.Nil).Return(report.Summary{
		Totals:       report.Totals{Income: 100000, Expense: 35000, Balance: 65000},
		TodayExpense: 5000,
		Monthly: []report.MonthRow{
			{Month: "2024-02", Expense: 5000, Balance: -5000},
			{Month: "2024-01", Income: 100000, Expense: 30000, Balance: 70000},
		},
		Categories: []report.CategoryRow{{Category: "Food", Amount: 5000}},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/summary")

	require.Equal(t, http.StatusOK, resp.Code)
	var body SummaryBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 650.0, body.Balance.Value)
	assert.Equal(t, "₱1,000.00", body.Income.Display)
	assert.Equal(t, "₱50.00", body.TodayExpense.Display)
	require.Len(t, body.Monthly, 2)
	assert.Equal(t, "2024-02", body.Monthly[0].Month)
	assert.Equal(t, "-₱50.00", body.Monthly[0].Balance.Display)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "Food", body.Categories[0].Category)
}

// -- categories --

func TestHTTP_Categories(t *testing.T) {
	resp := newTestAPI(t, new(mockTransactionService)).Get("/api/categories")

	require.Equal(t, http.StatusOK, resp.Code)
	var body CategoriesBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Expense, "Food")
	assert.Contains(t, body.Income, "Allowance")
}
