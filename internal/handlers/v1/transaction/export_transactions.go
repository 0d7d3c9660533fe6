package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/trackease/internal/auth"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/logging"
)

const exportFilename = "transactions.csv"

type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type transactionExporter interface {
	ExportCSV(ctx context.Context, owner uuid.UUID) ([]byte, error)
}

// ExportTransactionsHandler handles GET /api/export.
type ExportTransactionsHandler struct {
	TransactionService transactionExporter
}

func NewExportTransactionsHandler(svc transactionExporter) *ExportTransactionsHandler {
	return &ExportTransactionsHandler{TransactionService: svc}
}

func (h *ExportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/api/export",
		Summary:     "Export transactions as CSV",
		Tags:        []string{"Transactions"},
		Security:    v1.Secure(),
		Responses: map[string]*huma.Response{
			"200": {
				Description: "CSV export",
				Content: map[string]*huma.MediaType{
					"text/csv": {Schema: &huma.Schema{Type: huma.TypeString}},
				},
			},
		},
	}, h.handle)
}

func (h *ExportTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ExportTransactionsOutput, error) {
	data, err := h.TransactionService.ExportCSV(ctx, auth.OwnerFromContext(ctx))
	if err != nil {
		return nil, v1.InternalError(ctx, "failed to export transactions", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("exportBytes", len(data))
	}

	return &ExportTransactionsOutput{
		ContentType:        "text/csv",
		ContentDisposition: "attachment; filename=" + exportFilename,
		Body:               data,
	}, nil
}
