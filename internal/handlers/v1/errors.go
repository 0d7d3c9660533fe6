// Package v1 holds helpers shared by the versioned handlers.
package v1

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/trackease/internal/logging"
)

// BearerAuth is the name of the security scheme registered on the API.
const BearerAuth = "bearer"

// Secure marks an operation as requiring a bearer token.
func Secure() []map[string][]string {
	return []map[string][]string{{BearerAuth: {}}}
}

// InternalError records err on the request log and returns a 500 that does
// not expose it.
func InternalError(ctx context.Context, msg string, err error) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.SetError(err)
	}
	return huma.Error500InternalServerError(msg)
}
