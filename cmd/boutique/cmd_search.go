package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sedastudio/boutique/internal/bootstrap"
)

// boutique search:sync — push the in-stock catalog to the remote index.
var searchSyncCmd = &cobra.Command{
	Use:   "search:sync",
	Short: "Replace the remote search index with the current in-stock catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New()
		if err != nil {
			return err
		}
		defer app.Close()

		if !app.Search.IsReady() {
			fmt.Println("Remote search index not configured (SEARCH_APP_ID / SEARCH_API_KEY / SEARCH_INDEX_NAME). Nothing to sync.")
			return nil
		}

		result, err := app.Search.SyncInventory()
		if err != nil {
			return err
		}
		fmt.Printf("✅  Index synced: %d in-stock products pushed.\n", result.Total)
		return nil
	},
}

// boutique search:check — probe the index with a test query.
var searchCheckCmd = &cobra.Command{
	Use:   "search:check [query]",
	Short: "Run a probe search and report which path served it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap.New()
		if err != nil {
			return err
		}
		defer app.Close()

		query := "seda"
		if len(args) == 1 {
			query = args[0]
		}

		result := app.Search.Run(query, 0, 10)
		fmt.Printf("Query %q served by %s: %d hits (inventory %d, in stock %d)\n",
			query,
			result.Diagnostics.Mode,
			result.Total,
			result.Diagnostics.InventorySize,
			result.Diagnostics.InStock,
		)
		for _, p := range result.Items {
			fmt.Printf("  • %s — %s (%.0f %s, stock %d)\n", p.ID, p.Title, p.Price, p.Currency, p.Stock)
		}
		return nil
	},
}
