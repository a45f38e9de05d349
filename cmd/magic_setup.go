package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"magiccards.GO/config"
	cardService "magiccards.GO/service/card"
)

var setupCmd = &cobra.Command{
	Use:   "magic:setup",
	Short: "Migrate catalog tables and install the card attribute dictionary",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := cardService.InstallSchema(db); err != nil {
			fmt.Fprintf(os.Stderr, "Schema migration failed: %v\n", err)
			os.Exit(1)
		}
		if err := cardService.InstallCardAttributes(db, config.AppConfig.RootCategoryID); err != nil {
			fmt.Fprintf(os.Stderr, "Attribute install failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog schema and card attributes are installed.")
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
