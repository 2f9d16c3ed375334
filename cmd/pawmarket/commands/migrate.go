package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SurrealQL schema migrations in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("read migrations dir: %w", err)
			}

			applied := 0
			// os.ReadDir sorts by name, which is the migration order
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".surql") {
					continue
				}
				path := filepath.Join(dir, entry.Name())
				script, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", entry.Name(), err)
				}
				if err := db.Execute(cmd.Context(), string(script), nil); err != nil {
					return fmt.Errorf("apply %s: %w", entry.Name(), err)
				}
				fmt.Printf("applied %s\n", entry.Name())
				applied++
			}

			fmt.Printf("%d migrations applied\n", applied)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory containing .surql migration files")
	return cmd
}
