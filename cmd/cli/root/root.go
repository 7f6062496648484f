package root

import (
	"github.com/spf13/cobra"

	"github.com/crucial707/todo-web/cmd/cli/config"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "todo-cli",
	Short:         "To-do admin CLI",
	Long:          "Command line tools for operating the to-do web app's SQLite database.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	config.BindFlags(RootCmd)
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
