package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/trackease/internal/logging"
)

// OperationMiddleware tags the request's LogData with the matched operation
// so logs and request metrics are split per route rather than per mux.
func OperationMiddleware(ctx huma.Context, next func(huma.Context)) {
	if logData := logging.GetLogData(ctx.Context()); logData != nil {
		if op := ctx.Operation(); op != nil && op.OperationID != "" {
			logData.SetRoute(op.OperationID)
			logData.AddData("operation", op.OperationID)
		}
	}
	next(ctx)
}
