package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/todo-web/cmd/cli/config"
	"github.com/crucial707/todo-web/internal/db"
)

// ==========================
// Init Migrate
// ==========================
func InitMigrate(rootCmd *cobra.Command) {
	rootCmd.AddCommand(migrateCmd())
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Create the users and todos tables if missing and upgrade older databases in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := config.OpenDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			version, err := db.Version(cmd.Context(), conn)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: schema at version %d\n", config.DBPath(), version)
			return nil
		},
	}
}
