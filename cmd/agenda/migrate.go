package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/agenda/internal/config"
	"github.com/totegamma/agenda/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if conf.Server.Storage != config.StoragePostgres {
			return errors.Errorf("migrate needs postgres storage, got %q", conf.Server.Storage)
		}

		db, err := database.NewPostgres(conf.Server.PostgresDsn)
		if err != nil {
			return errors.Wrap(err, "failed to connect database")
		}

		if err := database.MigratePostgres(db); err != nil {
			return errors.Wrap(err, "failed to migrate database")
		}

		slog.Info("migration finished", slog.String("module", "main"))
		return nil
	},
}
