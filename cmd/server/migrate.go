package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/db"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update all tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return err
		}

		reset, _ := cmd.Flags().GetBool("reset")
		if reset || cfg.ResetDB {
			log.Println("dropping all tables...")
			if err := db.Reset(gormDB); err != nil {
				return fmt.Errorf("reset database: %w", err)
			}
		}

		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		log.Println("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("reset", false, "drop every table before migrating")
}
