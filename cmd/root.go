package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "magiccards",
	Short: "Magic card importer for a Magento-style catalog",
	Long:  "Imports Magic: the Gathering card data from Scryfall and materializes it as configurable products and categories.",
	Run: func(cmd *cobra.Command, args []string) {
		fig := figure.NewFigure("MagicCards", "", true)
		fig.Print()
		fmt.Println()
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
