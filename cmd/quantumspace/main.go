package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/quantumspace/research-platform/pkg/config"
	"github.com/quantumspace/research-platform/pkg/database"
	"github.com/quantumspace/research-platform/pkg/research"
	"github.com/spf13/cobra"
)

func main() {
	// Setup structured logging
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	// Load .env file
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	rootCmd := &cobra.Command{
		Use:   "quantumspace",
		Short: "Admin CLI for the QuantumSpace research platform",
		Long:  `quantumspace performs operational tasks against the research store: seeding sample data and inspecting statistics.`,
	}

	rootCmd.AddCommand(seedCmd(), statsCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

// openStore connects to the database and ensures the schema exists.
func openStore(ctx context.Context) (*research.Store, *database.PostgresDB, error) {
	cfg := config.Load()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.Options{
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return research.NewStore(db), db, nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample research records if the store is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			seeded, err := store.Seed(ctx)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}

			if seeded {
				slog.Info("Database initialized with sample research data")
			} else {
				slog.Info("Store is not empty, seeding skipped")
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print research store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := store.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch stats: %w", err)
			}

			fmt.Printf("Total research items: %d\n", stats.TotalResearch)
			fmt.Printf("  space:    %d\n", stats.Categories.Space)
			fmt.Printf("  quantum:  %d\n", stats.Categories.Quantum)
			fmt.Printf("  ai:       %d\n", stats.Categories.AI)
			fmt.Printf("  database: %d\n", stats.Categories.Database)
			return nil
		},
	}
}
