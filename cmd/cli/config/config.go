package config

import (
	"database/sql"

	"github.com/spf13/cobra"

	appconfig "github.com/crucial707/todo-web/internal/config"
	"github.com/crucial707/todo-web/internal/db"
)

var dbPath string

// BindFlags registers the global --db flag on the root command.
func BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (default $DB_PATH or ./data.db)")
}

// DBPath returns the database file the CLI works on.
// --db wins over DB_PATH, which wins over the web server's default.
func DBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return appconfig.Load().DBPath
}

// SetDBPath overrides the database file as if --db had been given.
func SetDBPath(path string) {
	dbPath = path
}

// OpenDB opens the configured database with a single connection.
func OpenDB() (*sql.DB, error) {
	return db.Open(DBPath(), 1, 1)
}
