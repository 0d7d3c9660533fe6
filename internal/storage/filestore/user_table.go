package filestore

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"github.com/carson-networks/trackease/internal/domain"
	"github.com/carson-networks/trackease/internal/storage/user"
)

var _ user.IUserTable = (*userTable)(nil)
var _ user.IUserTable = (*autoUsers)(nil)

type userTable struct {
	doc *document
	now func() time.Time
}

func (t *userTable) Insert(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	email := domain.NormalizeEmail(create.Email)
	for i := range t.doc.Users {
		if domain.NormalizeEmail(t.doc.Users[i].Email) == email {
			return nil, user.ErrEmailTaken
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "filestore: generate id")
	}
	rec := userRecord{
		ID:        id,
		Email:     email,
		Password:  create.Password,
		CreatedAt: fileTime{Time: t.now()},
	}
	t.doc.Users = append(t.doc.Users, rec)

	return recordToUser(&rec), nil
}

func (t *userTable) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = domain.NormalizeEmail(email)
	for i := range t.doc.Users {
		if domain.NormalizeEmail(t.doc.Users[i].Email) == email {
			return recordToUser(&t.doc.Users[i]), nil
		}
	}
	return nil, user.ErrNotFound
}

func recordToUser(rec *userRecord) *user.User {
	return &user.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Password:  rec.Password,
		CreatedAt: rec.CreatedAt.Time,
	}
}

type autoUsers struct {
	store *Store
}

func (a *autoUsers) Insert(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	created, err := tx.Users().Insert(ctx, create)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (a *autoUsers) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return (&userTable{doc: a.store.snapshot(), now: a.store.now}).FindByEmail(ctx, email)
}
