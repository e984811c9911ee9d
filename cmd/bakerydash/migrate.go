package main

import (
	"github.com/spf13/cobra"

	"bakerydash/internal/infrastructure/mysql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the MySQL schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mysql.MigrateUp(cfg.Database, log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every applied migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mysql.MigrateDown(cfg.Database, log)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
