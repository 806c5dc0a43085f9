package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory API - products, orders and sales behind permission-gated routes",
	Long: `Inventory API serves the product catalog, order engine and sales reports
over HTTP. Configuration is read from the environment (JWT_SECRET, DB_DRIVER,
DB_DSN, REDIS_ADDR, MONGO_URI, ...).

Commands:
  serve    - Run the HTTP server
  migrate  - Apply the schema and bootstrap the built-in accounts
  passwd   - Set the password of a user`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, passwdCmd)
}
