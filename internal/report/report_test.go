package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/trackease/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func tx(typ domain.TransactionType, amount domain.Cents, date time.Time) domain.Transaction {
	return domain.Transaction{Type: typ, Category: domain.DefaultCategory, Amount: amount, Date: date}
}

func scenario() []domain.Transaction {
	return []domain.Transaction{
		tx(domain.TypeIncome, 100000, day(2024, 1, 5)),
		tx(domain.TypeExpense, 30000, day(2024, 1, 10)),
		tx(domain.TypeExpense, 5000, day(2024, 2, 1)),
	}
}

func TestComputeTotals_Scenario(t *testing.T) {
	totals := ComputeTotals(scenario())

	assert.Equal(t, domain.Cents(100000), totals.Income)
	assert.Equal(t, domain.Cents(35000), totals.Expense)
	assert.Equal(t, domain.Cents(65000), totals.Balance)
}

func TestMonthly_Scenario(t *testing.T) {
	rows := Monthly(scenario(), time.UTC)

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-02", rows[0].Month)
	assert.Equal(t, domain.Cents(0), rows[0].Income)
	assert.Equal(t, domain.Cents(5000), rows[0].Expense)
	assert.Equal(t, domain.Cents(-5000), rows[0].Balance)

	assert.Equal(t, "2024-01", rows[1].Month)
	assert.Equal(t, domain.Cents(100000), rows[1].Income)
	assert.Equal(t, domain.Cents(30000), rows[1].Expense)
	assert.Equal(t, domain.Cents(70000), rows[1].Balance)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, day(2024, 1, 5))

	assert.Equal(t, Totals{}, s.Totals)
	assert.Equal(t, domain.Cents(0), s.TodayExpense)
	assert.Empty(t, s.Monthly)
	assert.Empty(t, s.Categories)
}

func TestSummarize_UndatedTransactionMatchesNoBucket(t *testing.T) {
	at := day(2024, 3, 15)
	txs := []domain.Transaction{
		tx(domain.TypeExpense, 999, time.Time{}),
		tx(domain.TypeExpense, 100, at),
	}

	s := Summarize(txs, at)

	assert.Equal(t, domain.Cents(1099), s.Totals.Expense)
	assert.Equal(t, domain.Cents(100), s.TodayExpense)
	require.Len(t, s.Monthly, 1)
	assert.Equal(t, domain.Cents(100), s.Monthly[0].Expense)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, domain.Cents(100), s.Categories[0].Amount)
}

func TestTodayExpense_LocalCalendarDay(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	at := time.Date(2024, 5, 10, 9, 0, 0, 0, manila)

	txs := []domain.Transaction{
		// 2024-05-10 01:00 in Manila.
		tx(domain.TypeExpense, 100, time.Date(2024, 5, 9, 17, 0, 0, 0, time.UTC)),
		tx(domain.TypeExpense, 200, time.Date(2024, 5, 10, 23, 59, 0, 0, manila)),
		// 2024-05-09 23:30 in Manila.
		tx(domain.TypeExpense, 400, time.Date(2024, 5, 9, 15, 30, 0, 0, time.UTC)),
		tx(domain.TypeExpense, 800, time.Date(2024, 5, 11, 0, 0, 0, 0, manila)),
		tx(domain.TypeIncome, 1600, at),
	}

	assert.Equal(t, domain.Cents(300), TodayExpense(txs, at))
}

func TestCategoryBreakdown_CurrentMonthExpensesOnly(t *testing.T) {
	at := day(2024, 3, 15)
	txs := []domain.Transaction{
		{Type: domain.TypeExpense, Category: "Food", Amount: 300, Date: day(2024, 3, 1)},
		{Type: domain.TypeExpense, Category: "Food", Amount: 200, Date: day(2024, 3, 31)},
		{Type: domain.TypeExpense, Category: "Transportation", Amount: 500, Date: day(2024, 3, 2)},
		{Type: domain.TypeExpense, Category: "", Amount: 50, Date: day(2024, 3, 3)},
		{Type: domain.TypeExpense, Category: "Food", Amount: 999, Date: day(2024, 2, 29)},
		{Type: domain.TypeIncome, Category: "Allowance", Amount: 5000, Date: day(2024, 3, 3)},
	}

	rows := CategoryBreakdown(txs, at)

	assert.Equal(t, []CategoryRow{
		{Category: "Food", Amount: 500},
		{Category: "Transportation", Amount: 500},
		{Category: "Other", Amount: 50},
	}, rows)
}

func TestHistory_DescendingAndStable(t *testing.T) {
	same := day(2024, 1, 10)
	txs := []domain.Transaction{
		{Note: "old", Date: day(2024, 1, 1)},
		{Note: "first-same", Date: same},
		{Note: "undated"},
		{Note: "newest", Date: day(2024, 2, 1)},
		{Note: "second-same", Date: same},
	}

	got := History(txs)

	notes := make([]string, len(got))
	for i, h := range got {
		notes[i] = h.Note
	}
	assert.Equal(t, []string{"newest", "first-same", "second-same", "old", "undated"}, notes)
	assert.Equal(t, "old", txs[0].Note, "input is not reordered")
}

func TestMonthly_PartitionsDatedTransactions(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeIncome, 123, day(2023, 12, 31)),
		tx(domain.TypeIncome, 456, day(2024, 1, 1)),
		tx(domain.TypeExpense, 78, day(2024, 1, 2)),
		tx(domain.TypeIncome, 1, time.Time{}),
		tx(domain.TypeExpense, 9, day(2022, 6, 6)),
	}

	var income, expense domain.Cents
	for _, row := range Monthly(txs, time.UTC) {
		income += row.Income
		expense += row.Expense
		assert.Equal(t, row.Income-row.Expense, row.Balance)
	}

	totals := ComputeTotals(txs)
	assert.Equal(t, totals.Income-1, income)
	assert.Equal(t, totals.Expense, expense)
}

func TestMonthly_UnknownTypeCountsNowhere(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.TypeIncome, 1000, day(2024, 3, 1)),
		tx(domain.TypeExpense, 400, day(2024, 3, 2)),
		tx(domain.TransactionType("transfer"), 250, day(2024, 3, 3)),
	}

	totals := ComputeTotals(txs)
	assert.Equal(t, domain.Cents(1000), totals.Income)
	assert.Equal(t, domain.Cents(400), totals.Expense)

	rows := Monthly(txs, time.UTC)
	require.Len(t, rows, 1)
	assert.Equal(t, MonthRow{Month: "2024-03", Income: 1000, Expense: 400, Balance: 600}, rows[0])
}

func TestMonthKey(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)

	key, ok := MonthKey(time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC), manila)
	assert.True(t, ok)
	assert.Equal(t, "2024-02", key)

	_, ok = MonthKey(time.Time{}, manila)
	assert.False(t, ok)
}
