package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/trackease/internal/config"
	"github.com/carson-networks/trackease/internal/storage/sqlconfig"
)

// Standalone migration runner for deploy hooks that should not ship the
// server binary.
func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations exited")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "db_migrations",
		Usage: "apply the Postgres schema migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML config file, overridden by the environment",
				EnvVars: []string{"TRACKEASE_CONFIG"},
			},
		},
		Action: migrate,
	}
}

func migrate(c *cli.Context) error {
	// only the postgres keys matter here, so validation problems elsewhere
	// (such as a missing JWT_SECRET) are reported but not fatal
	env, err := config.ProcessEnvironmentVariables(c.String("config"))
	if env == nil {
		return errors.Wrap(err, "config.ProcessEnvironmentVariables")
	}
	if err != nil {
		logrus.WithError(err).Warn("ProcessEnvironmentVariables")
	}

	preMigrationVersion, postMigrationVersion, err := sqlconfig.Migrate(env.PostgresURL())
	if err != nil {
		return errors.Wrap(err, "sqlconfig.Migrate")
	}

	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")
	return nil
}
