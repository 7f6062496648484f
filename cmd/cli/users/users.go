package users

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/todo-web/cmd/cli/config"
	"github.com/crucial707/todo-web/cmd/cli/output"
	"github.com/crucial707/todo-web/internal/repo"
)

// ==========================
// Init Users
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	rootCmd.AddCommand(listUsersCmd())
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users with their task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := config.OpenDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			summaries, err := repo.NewUserRepo(conn).ListSummaries(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			if asJSON {
				b, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}

			rows := make([][]interface{}, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []interface{}{s.ID, s.Username, s.Tasks, s.Completed, s.Tasks - s.Completed})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "USERNAME", "TASKS", "DONE", "OPEN"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
