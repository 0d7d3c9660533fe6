// Package report derives totals, rollups and orderings from a snapshot of
// transactions. Every function is pure; "now" is always passed in.
package report

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"github.com/carson-networks/trackease/internal/domain"
)

type Totals struct {
	Income  domain.Cents
	Expense domain.Cents
	Balance domain.Cents
}

type MonthRow struct {
	Month   string
	Income  domain.Cents
	Expense domain.Cents
	Balance domain.Cents
}

type CategoryRow struct {
	Category string
	Amount   domain.Cents
}

// Summary is everything a dashboard needs in one pass.
type Summary struct {
	Totals       Totals
	TodayExpense domain.Cents
	Monthly      []MonthRow
	Categories   []CategoryRow
}

func ComputeTotals(txs []domain.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case domain.TypeIncome:
			t.Income += tx.Amount
		case domain.TypeExpense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	return t
}

// TodayExpense sums expenses dated on the calendar day of at, in at's location.
func TodayExpense(txs []domain.Transaction, at time.Time) domain.Cents {
	day := now.With(at)
	return sumExpensesBetween(txs, day.BeginningOfDay(), day.EndOfDay())
}

// MonthKey returns "YYYY-MM" for t in loc, or false for a zero time.
func MonthKey(t time.Time, loc *time.Location) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01"), true
}

// Monthly groups dated transactions by month, most recent month first.
func Monthly(txs []domain.Transaction, loc *time.Location) []MonthRow {
	byMonth := make(map[string]*MonthRow)
	for _, tx := range txs {
		key, ok := MonthKey(tx.Date, loc)
		if !ok {
			continue
		}
		row, exists := byMonth[key]
		if !exists {
			row = &MonthRow{Month: key}
			byMonth[key] = row
		}
		switch tx.Type {
		case domain.TypeIncome:
			row.Income += tx.Amount
		case domain.TypeExpense:
			row.Expense += tx.Amount
		}
	}

	rows := make([]MonthRow, 0, len(byMonth))
	for _, row := range byMonth {
		row.Balance = row.Income - row.Expense
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month > rows[j].Month
	})
	return rows
}

// CategoryBreakdown sums this month's expenses per category, largest first.
func CategoryBreakdown(txs []domain.Transaction, at time.Time) []CategoryRow {
	month := now.With(at)
	start, end := month.BeginningOfMonth(), month.EndOfMonth()

	sums := make(map[string]domain.Cents)
	for _, tx := range txs {
		if tx.Type != domain.TypeExpense || !within(tx.Date, start, end) {
			continue
		}
		sums[domain.NormalizeCategory(tx.Category)] += tx.Amount
	}

	rows := make([]CategoryRow, 0, len(sums))
	for category, amount := range sums {
		rows = append(rows, CategoryRow{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// History returns a copy ordered by date descending. Equal dates keep their
// input order and undated records go last.
func History(txs []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return out
}

func Summarize(txs []domain.Transaction, at time.Time) Summary {
	return Summary{
		Totals:       ComputeTotals(txs),
		TodayExpense: TodayExpense(txs, at),
		Monthly:      Monthly(txs, at.Location()),
		Categories:   CategoryBreakdown(txs, at),
	}
}

func sumExpensesBetween(txs []domain.Transaction, start, end time.Time) domain.Cents {
	var sum domain.Cents
	for _, tx := range txs {
		if tx.Type == domain.TypeExpense && within(tx.Date, start, end) {
			sum += tx.Amount
		}
	}
	return sum
}

func within(t, start, end time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(start) && !t.After(end)
}
