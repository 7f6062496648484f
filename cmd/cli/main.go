package main

import (
	"fmt"
	"os"

	"github.com/crucial707/todo-web/cmd/cli/migrate"
	"github.com/crucial707/todo-web/cmd/cli/root"
	"github.com/crucial707/todo-web/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	migrate.InitMigrate(rootCmd)
	users.InitUsers(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
