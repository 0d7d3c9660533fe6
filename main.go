package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/trackease/api"
	"github.com/carson-networks/trackease/internal/auth"
	"github.com/carson-networks/trackease/internal/config"
	"github.com/carson-networks/trackease/internal/logging"
	"github.com/carson-networks/trackease/internal/operator"
	"github.com/carson-networks/trackease/internal/service"
	"github.com/carson-networks/trackease/internal/storage"
	"github.com/carson-networks/trackease/internal/storage/sqlconfig"
)

func main() {
	logger := logging.SetupLogging()

	app := &cli.App{
		Name:  "trackease",
		Usage: "income and expense tracker API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML config file, overridden by the environment",
				EnvVars: []string{"TRACKEASE_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return serve(c, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Action: func(c *cli.Context) error {
					return serve(c, logger)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply the Postgres schema migrations",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c, logger)
					if err != nil {
						return err
					}
					return runMigrations(cfg, logger)
				},
			},
			{
				Name:  "export",
				Usage: "write the CSV export for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "user whose transactions are exported; omit for the unowned set"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout when empty"},
				},
				Action: func(c *cli.Context) error {
					return export(c, logger)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.WithError(err).Fatal("trackease exited")
	}
}

func loadConfig(c *cli.Context, logger *logrus.Logger) (*config.Config, error) {
	cfg, err := config.ProcessEnvironmentVariables(c.String("config"))
	if err != nil {
		return nil, errors.Wrap(err, "config.ProcessEnvironmentVariables")
	}
	if err := logging.SetLevel(logger, cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "logging.SetLevel")
	}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug(spew.Sdump(cfg.Redacted()))
	}
	return cfg, nil
}

func runMigrations(cfg *config.Config, logger *logrus.Logger) error {
	if cfg.StorageBackend != config.BackendPostgres {
		logger.WithField("backend", cfg.StorageBackend).Info("Migration skipped")
		return nil
	}

	pre, post, err := sqlconfig.Migrate(cfg.PostgresURL())
	if err != nil {
		return errors.Wrap(err, "sqlconfig.Migrate")
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  pre,
		"postMigrationVersion": post,
	}).Info("Migration status")
	return nil
}

// buildService wires storage, the operator and the services. The returned
// cleanup stops the operator before closing storage.
func buildService(cfg *config.Config) (*storage.Storage, *service.Service, *auth.TokenIssuer, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "storage.NewStorage")
	}

	var tokens *auth.TokenIssuer
	if cfg.AuthEnabled {
		tokens, err = auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			_ = store.Close()
			return nil, nil, nil, nil, err
		}
	}

	delegator := operator.NewOperatorDelegator(store, cfg.OperatorWorkers)
	delegator.Start()

	svc := service.NewService(store, delegator, tokens, service.Options{
		Location:   loc,
		BcryptCost: cfg.BcryptCost,
	})

	cleanup := func() {
		delegator.Stop()
		_ = store.Close()
	}
	return store, svc, tokens, cleanup, nil
}

func serve(c *cli.Context, logger *logrus.Logger) error {
	logger.Info("trackease starting")

	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	if cfg.StorageBackend == config.BackendPostgres && cfg.RunMigrations {
		if err := runMigrations(cfg, logger); err != nil {
			return err
		}
	}

	store, svc, tokens, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if tokens == nil {
		logger.Warn("authentication disabled, all requests share the unowned transaction set")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    cfg.Port,
		Service: svc,
		Storage: store,
		Tokens:  tokens,
	}
	return httpRest.Serve(ctx)
}

func export(c *cli.Context, logger *logrus.Logger) error {
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	store, svc, _, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	owner := uuid.Nil
	if email := c.String("email"); email != "" {
		u, err := store.Users.FindByEmail(ctx, email)
		if err != nil {
			return errors.Wrapf(err, "find user %s", email)
		}
		owner = u.ID
	}

	data, err := svc.Transaction.ExportCSV(ctx, owner)
	if err != nil {
		return errors.Wrap(err, "ExportCSV")
	}

	var out io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		out = f
	}

	_, err = out.Write(data)
	return err
}
