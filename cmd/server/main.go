package main

import (
	"fmt"
	"log"
	"os"

	_ "vibealong/docs"
	"vibealong/internal/config"
	"vibealong/internal/logger"
	"vibealong/internal/migrations"
	"vibealong/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           VibeAlong API
// @version         1.0
// @description     Task collaboration between vibe coders and developers.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vibealong",
	Short: "VibeAlong API server",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	zl, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Printf("❌ Logger initialization failed: %v", err)
		return nil, nil, err
	}
	return cfg, zl, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, zl, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	s, err := server.Init(cfg, zl)
	if err != nil {
		zl.Error("❌ Server initialization failed", zap.Error(err))
		return err
	}

	s.Run()
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, zl, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	runner := migrations.NewRunner(cfg.MigrateURL(), zl)
	if args[0] == "down" {
		if err := runner.Down(); err != nil {
			return err
		}
		zl.Info("✅ Schema rolled back")
		return nil
	}
	return runner.Up()
}
