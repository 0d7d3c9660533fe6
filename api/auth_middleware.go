package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/trackease/internal/auth"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/logging"
)

type tokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// NewAuthMiddleware guards operations that declare bearer security. A
// missing token is a 401; one that fails verification is a 403.
func NewAuthMiddleware(api huma.API, verifier tokenVerifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresBearer(ctx.Operation()) {
			next(ctx)
			return
		}

		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "No token provided")
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			if logData := logging.GetLogData(ctx.Context()); logData != nil {
				logData.AddData("authError", err.Error())
			}
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "Invalid token")
			return
		}

		if logData := logging.GetLogData(ctx.Context()); logData != nil {
			logData.AddData("userID", identity.UserID.String())
		}
		next(huma.WithContext(ctx, auth.WithIdentity(ctx.Context(), identity)))
	}
}

func requiresBearer(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[v1.BearerAuth]; ok {
			return true
		}
	}
	return false
}
