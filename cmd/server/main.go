package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// @title Storefront API
// @version 1.0
// @description Storefront with catalog, session-based login, cart and checkout.
// @host localhost:8080
// @BasePath /
// @schemes http
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront web service",
	Long: `Storefront web service. Usage:

	storefront            start the HTTP server
	storefront serve      same as above
	storefront migrate    create or update database tables
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadLocalEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
