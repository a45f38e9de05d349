package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"magiccards.GO/config"
	"magiccards.GO/scryfall"
	cardService "magiccards.GO/service/card"
)

var (
	importWorkers int
	importRootCat uint
	importStore   uint16
)

var importCmd = &cobra.Command{
	Use:   "magic:import [set code]",
	Short: "Import cards from Scryfall into the catalog",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
		cfg := config.AppConfig

		client := scryfall.New(scryfall.Config{
			BaseURL:    cfg.ScryfallBaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: cfg.MaxRetries,
			RatePerSec: cfg.RatePerSec,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Usage path: no set code lists what is importable, then fails.
		if len(args) == 0 {
			sets, err := client.ListSets(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to list sets: %v\n", err)
				os.Exit(1)
			}
			for _, set := range sets {
				fmt.Printf("%s - %s\n", set.Code, set.Name)
			}
			fmt.Fprintln(os.Stderr, "Please include a set code to import cards from.")
			os.Exit(1)
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Database connection failed: %v\n", err)
			os.Exit(1)
		}

		rootCat := importRootCat
		if rootCat == 0 {
			rootCat = cfg.RootCategoryID
		}
		importer := cardService.NewImporter(db, client, cardService.ImportOptions{
			RootCategoryID: rootCat,
			StoreID:        importStore,
			Workers:        importWorkers,
		})

		res, err := importer.ImportSet(ctx, args[0])
		if res != nil {
			printReport(res)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func printReport(res *cardService.ImportResult) {
	fmt.Printf(`
=== Import Report ===
Set:         %s (%s)
Cards:       %d
Created:     %d
Updated:     %d
Skipped:     %d
Failed:      %d
Total time:  %s
=====================
`, res.SetName, res.SetCode,
		res.Total, res.Created, res.Updated, res.Skipped, res.Failed,
		res.TotalTime.Round(time.Millisecond))
}

func init() {
	importCmd.Flags().IntVar(&importWorkers, "workers", 1, "Concurrent card upserts (1 = sequential)")
	importCmd.Flags().UintVar(&importRootCat, "root-category", 0, "Root category ID (default from ROOT_CATEGORY_ID)")
	importCmd.Flags().Uint16Var(&importStore, "store", 0, "Store ID for attribute values")
	rootCmd.AddCommand(importCmd)
}
