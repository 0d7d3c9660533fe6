package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/transaction"
)

var _ transaction.ITransactionTable = (*TransactionsTable)(nil)

var transactionColumns = []any{"id", "user_id", "type", "category", "amount", "note", "date", "created_at"}

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

type transactionRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.NullUUID   `db:"user_id"`
	Type      string          `db:"type"`
	Category  string          `db:"category"`
	Amount    decimal.Decimal `db:"amount"`
	Note      string          `db:"note"`
	Date      time.Time       `db:"date"`
	CreatedAt time.Time       `db:"created_at"`
}

// List returns the owner's transactions, newest date first and insertion
// order within a date. A nil filter returns every row.
func (t *TransactionsTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
	}
	if filter != nil {
		queryMods = append(queryMods, sm.Where(ownedBy(filter.UserID)))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, errors.Wrap(err, "transactions.List")
	}

	result := make([]*transaction.Transaction, len(rows))
	for i := range rows {
		result[i] = rowToTransaction(&rows[i])
	}
	return result, nil
}

func (t *TransactionsTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	q := psql.Insert(
		im.Into("transactions", "user_id", "type", "category", "amount", "note", "date"),
		im.Values(
			psql.Arg(nullableOwner(create.UserID)),
			psql.Arg(create.Type),
			psql.Arg(domain.NormalizeCategory(create.Category)),
			psql.Arg(create.Amount),
			psql.Arg(create.Note),
			psql.Arg(create.Date),
		),
		im.Returning(transactionColumns...),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, errors.Wrap(err, "transactions.Insert")
	}
	return rowToTransaction(&row), nil
}

func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(ownedBy(userID)),
	)

	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return false, errors.Wrap(err, "transactions.Delete")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "transactions.Delete.RowsAffected")
	}
	return affected > 0, nil
}

// ownedBy matches userID, with uuid.Nil selecting the unowned rows.
func ownedBy(userID uuid.UUID) dialect.Expression {
	if userID == uuid.Nil {
		return psql.Quote("user_id").IsNull()
	}
	return psql.Quote("user_id").EQ(psql.Arg(userID))
}

func nullableOwner(userID uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: userID, Valid: userID != uuid.Nil}
}

func rowToTransaction(row *transactionRow) *transaction.Transaction {
	return &transaction.Transaction{
		ID:        row.ID,
		UserID:    row.UserID.UUID,
		Type:      row.Type,
		Category:  row.Category,
		Amount:    row.Amount,
		Note:      row.Note,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
	}
}
