package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/trackease/internal/auth"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/service"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, owner uuid.UUID, id uuid.UUID) error
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/api/transactions/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
		Security:      v1.Secure(),
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*struct{}, error) {
	// ids that cannot exist are reported the same as missing ones
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("Transaction not found")
	}

	err = h.TransactionService.DeleteTransaction(ctx, auth.OwnerFromContext(ctx), id)
	if errors.Is(err, service.ErrNotFound) {
		return nil, huma.Error404NotFound("Transaction not found")
	}
	if err != nil {
		return nil, v1.InternalError(ctx, "failed to delete transaction", err)
	}

	return nil, nil
}
