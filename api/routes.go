package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/trackease/internal/auth"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/handlers/v1/status"
	"github.com/carson-networks/trackease/internal/handlers/v1/transaction"
	"github.com/carson-networks/trackease/internal/handlers/v1/user"
	"github.com/carson-networks/trackease/internal/logging"
	"github.com/carson-networks/trackease/internal/service"
)

const shutdownTimeout = 10 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage pinger
	// Tokens is nil when authentication is disabled; every request then
	// acts for the unowned bucket.
	Tokens *auth.TokenIssuer
}

// Handler builds the full HTTP surface: the Huma API plus /status and /metrics.
func (r *Rest) Handler() http.Handler {
	apiMux := http.NewServeMux()
	humaConfig := huma.DefaultConfig("TrackEase", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		v1.BearerAuth: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	humaAPI := humago.New(apiMux, humaConfig)
	humaAPI.UseMiddleware(OperationMiddleware)
	if r.Tokens != nil {
		humaAPI.UseMiddleware(NewAuthMiddleware(humaAPI, r.Tokens))
	}

	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewExportTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewSummaryHandler(r.Service.Transaction).Register(humaAPI)
	transaction.RegisterCategories(humaAPI)
	if r.Tokens != nil {
		user.NewRegisterHandler(r.Service.User).Register(humaAPI)
		user.NewLoginHandler(r.Service.User).Register(humaAPI)
	}

	statusHandler := status.NewHandler(r.Storage)

	root := http.NewServeMux()
	root.Handle("/", logging.Middleware("API", r.Logger, apiMux))
	root.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	root.Handle("/metrics", promhttp.Handler())

	return CORS(root)
}

// Serve listens until ctx is canceled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
