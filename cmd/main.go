package main

import (
	"context"
	"fmt"
	"os"

	"roomledger/internal/common"
	"roomledger/internal/config"
	"roomledger/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	var configPath string
	rootCmd := &cobra.Command{
		Use:           "roomledger",
		Short:         "Room and tenant register for a rental building",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("ROOMLEDGER_CONFIG"), "path to a TOML config file")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		seedCmd(&configPath),
		userCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and opens the database pool shared by
// every command.
func bootstrap(ctx context.Context, configPath string) (*config.Config, *logrus.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := common.NewLogger(cfg.Log.Level, cfg.Log.Format)

	pool, err := database.NewPool(ctx, database.PoolConfig{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, pool, nil
}
