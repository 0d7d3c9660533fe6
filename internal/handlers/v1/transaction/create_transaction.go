package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/trackease/internal/auth"
	"github.com/carson-networks/trackease/internal/domain"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
// Type and Date are checked by the service so their errors read the same
// for every client.
type CreateTransactionBody struct {
	Type     string  `json:"type,omitempty" doc:"income or expense"`
	Category string  `json:"category,omitempty" doc:"Category label, defaults to Other"`
	Amount   float64 `json:"amount" minimum:"0" maximum:"999999999999.99" doc:"Non-negative amount in pesos"`
	Note     string  `json:"note,omitempty" doc:"Free-text note"`
	Date     string  `json:"date,omitempty" doc:"RFC3339 timestamp, datetime-local value or YYYY-MM-DD"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body Transaction
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, owner uuid.UUID, input service.TransactionInput) (domain.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/api/transactions",
		Summary:       "Create transaction",
		Description:   "Records a new income or expense.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
		Security:      v1.Secure(),
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	created, err := h.TransactionService.CreateTransaction(ctx, auth.OwnerFromContext(ctx), service.TransactionInput{
		Type:     input.Body.Type,
		Category: input.Body.Category,
		Amount:   decimal.NewFromFloat(input.Body.Amount),
		Note:     input.Body.Note,
		Date:     input.Body.Date,
	})
	switch {
	case err == nil:
		return &CreateTransactionOutput{Body: fromDomain(created)}, nil
	case errors.Is(err, service.ErrInvalidType):
		return nil, huma.Error400BadRequest("Invalid type")
	case errors.Is(err, service.ErrMissingDate):
		return nil, huma.Error400BadRequest("Date is required")
	case errors.Is(err, service.ErrInvalidDate):
		return nil, huma.Error400BadRequest("Invalid date")
	case errors.Is(err, service.ErrInvalidAmount):
		return nil, huma.Error400BadRequest("Invalid amount")
	default:
		return nil, v1.InternalError(ctx, "failed to create transaction", err)
	}
}
