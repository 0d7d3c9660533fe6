package actions

import (
	"context"

	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/user"
)

type RegisterUser struct {
	Email        string
	PasswordHash string

	Created *user.User
}

func (r *RegisterUser) Name() string {
	return "register_user"
}

func (r *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Users.Insert(ctx, &user.UserCreate{
		Email:    r.Email,
		Password: r.PasswordHash,
	})
	if err != nil {
		return err
	}

	r.Created = created
	return nil
}
