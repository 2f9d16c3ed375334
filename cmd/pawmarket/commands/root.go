package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pawmarket/api/internal/config"
	"github.com/pawmarket/api/internal/database"
)

var cfg *config.Config

// Execute runs the pawmarket CLI.
func Execute() error {
	root := &cobra.Command{
		Use:          "pawmarket",
		Short:        "PawMarket marketplace admin CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			return cfg.Validate()
		},
	}

	root.AddCommand(migrateCmd(), createAdminCmd(), seedCmd(), recalcRatingsCmd(), tokenCmd())
	return root.Execute()
}

// connect opens the configured database for the duration of one command.
// The returned func closes the connection.
func connect(ctx context.Context) (database.Database, func(), error) {
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}
