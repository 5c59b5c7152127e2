// Command migrate runs schema operations for the Estately database.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"estately/internal/config"
	"estately/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Estately schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(upCmd(), autoCmd(), statusCmd(), downCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads configuration and opens the database without touching the schema.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg, database.ConnectOptions{SkipSchema: true})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			applied, err := database.MigrateUp(cmd.Context(), db)
			if err != nil {
				return fmt.Errorf("sql migrations failed: %w", err)
			}
			for _, m := range applied {
				cmd.Printf("applied: %s\n", m.String())
			}
			cmd.Printf("%d migration(s) applied\n", len(applied))
			return nil
		},
	}
}

func autoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run GORM AutoMigrate against the persistent models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			cfg.DBSchemaMode = string(database.SchemaModeAuto)
			if err := database.ApplySchema(cmd.Context(), db, cfg); err != nil {
				return fmt.Errorf("auto schema apply failed: %w", err)
			}
			cmd.Println("automigrations applied")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema mode, migrations and model tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			status, err := database.GetSchemaStatus(cmd.Context(), db, cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}
			cmd.Printf("mode=%s env=%s sql=%t automigrate=%t create_missing=%t\n",
				status.Mode, status.Environment, status.RunsSQL, status.AutoMigrates, status.CreatesTables)
			for _, l := range status.Applied {
				cmd.Printf("applied: %06d_%s at %s\n", l.Version, l.Name, l.AppliedAt.Format(time.RFC3339))
			}
			for _, m := range status.Pending {
				cmd.Printf("pending: %s\n", m.String())
			}
			for _, t := range status.Tables {
				cmd.Printf("table %-10s exists=%t\n", t.Name, t.Exists)
			}
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down [version]",
		Short: "Roll back the latest applied migration; a given version must be that one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			version := 0
			if len(args) == 1 {
				if version, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
			}
			m, err := database.MigrateDown(cmd.Context(), db, version)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			cmd.Printf("rolled back: %s\n", m.String())
			return nil
		},
	}
}
