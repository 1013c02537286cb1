package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/sedastudio/boutique/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boutique",
	Short: "Seda Boutique — storefront CLI",
	Long:  "Operational CLI for the Seda Boutique backend: serve HTTP, manage the side-store schema, run workers and keep the search index in shape.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)

	// Workers
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(scheduleRunCmd)

	// Search index
	rootCmd.AddCommand(searchSyncCmd)
	rootCmd.AddCommand(searchCheckCmd)
}
