package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/trackease/internal/auth"
	"github.com/carson-networks/trackease/internal/domain"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/report"
)

// Amount pairs a numeric value with its display text, e.g. "₱1,234.50".
type Amount struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type MonthSummary struct {
	Month   string `json:"month" doc:"YYYY-MM"`
	Income  Amount `json:"income"`
	Expense Amount `json:"expense"`
	Balance Amount `json:"balance"`
}

type CategorySummary struct {
	Category string `json:"category"`
	Amount   Amount `json:"amount"`
}

type SummaryBody struct {
	Income       Amount            `json:"income"`
	Expense      Amount            `json:"expense"`
	Balance      Amount            `json:"balance"`
	TodayExpense Amount            `json:"todayExpense"`
	Monthly      []MonthSummary    `json:"monthly" doc:"Per-month rollup, most recent first"`
	Categories   []CategorySummary `json:"categories" doc:"Current month expenses by category, largest first"`
}

type SummaryOutput struct {
	Body SummaryBody
}

type transactionSummarizer interface {
	Summary(ctx context.Context, owner uuid.UUID) (report.Summary, error)
}

// SummaryHandler handles GET /api/summary.
type SummaryHandler struct {
	TransactionService transactionSummarizer
}

func NewSummaryHandler(svc transactionSummarizer) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/api/summary",
		Summary:     "Dashboard summary",
		Description: "Totals, today's spending, the monthly rollup and this month's category breakdown.",
		Tags:        []string{"Transactions"},
		Security:    v1.Secure(),
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	sum, err := h.TransactionService.Summary(ctx, auth.OwnerFromContext(ctx))
	if err != nil {
		return nil, v1.InternalError(ctx, "failed to compute summary", err)
	}

	body := SummaryBody{
		Income:       amountOf(sum.Totals.Income),
		Expense:      amountOf(sum.Totals.Expense),
		Balance:      amountOf(sum.Totals.Balance),
		TodayExpense: amountOf(sum.TodayExpense),
		Monthly:      make([]MonthSummary, len(sum.Monthly)),
		Categories:   make([]CategorySummary, len(sum.Categories)),
	}
	for i, m := range sum.Monthly {
		body.Monthly[i] = MonthSummary{
			Month:   m.Month,
			Income:  amountOf(m.Income),
			Expense: amountOf(m.Expense),
			Balance: amountOf(m.Balance),
		}
	}
	for i, c := range sum.Categories {
		body.Categories[i] = CategorySummary{Category: c.Category, Amount: amountOf(c.Amount)}
	}

	return &SummaryOutput{Body: body}, nil
}

func amountOf(c domain.Cents) Amount {
	return Amount{Value: c.Float64(), Display: c.Format()}
}
