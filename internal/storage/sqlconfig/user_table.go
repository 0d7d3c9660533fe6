package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/user"
)

var _ user.IUserTable = (*UsersTable)(nil)

const uniqueViolation = "23505"

var userColumns = []any{"id", "email", "password", "created_at"}

type UsersTable struct {
	exec bob.Executor
}

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *UsersTable) Insert(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	q := psql.Insert(
		im.Into("users", "email", "password"),
		im.Values(psql.Arg(domain.NormalizeEmail(create.Email)), psql.Arg(create.Password)),
		im.Returning(userColumns...),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[userRow]())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, user.ErrEmailTaken
		}
		return nil, errors.Wrap(err, "users.Insert")
	}
	return rowToUser(&row), nil
}

func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(domain.NormalizeEmail(email)))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[userRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "users.FindByEmail")
	}
	return rowToUser(&row), nil
}

func rowToUser(row *userRow) *user.User {
	return &user.User{
		ID:        row.ID,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: row.CreatedAt,
	}
}
