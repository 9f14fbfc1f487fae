package main

import (
	"fmt"

	"github.com/kaigoApp/kaigo-app/internal/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return migrations.Up(cmd.Context(), e.db, e.cfg.DBDriver, e.logger)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		v, err := migrations.Version(cmd.Context(), e.db, e.cfg.DBDriver)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema version: %d\n", e.cfg.DBDriver, v)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateVersionCmd)
}
