package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/sbilibin2017/recipe-api/internal/docs"
	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title recipe-api API
// @version 1.0.0
// @description Recipe management service: users, recipes, tags and ingredients
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// newRootCmd builds the CLI. The configuration is parsed once, before any
// subcommand runs, and shared through cfg.
func newRootCmd() *cobra.Command {
	var (
		configPath string
		cfg        *config
	)

	root := &cobra.Command{
		Use:           "recipe-api",
		Short:         "Recipe management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = parseConfig(configPath); err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}
			if err := logger.Initialize(cfg.LogLevel); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.env", "Path to configuration file")

	getConfig := func() *config { return cfg }

	root.AddCommand(
		newServeCmd(getConfig),
		newMigrateCmd(getConfig),
		newCreateSuperuserCmd(getConfig, os.Stdin),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBuildInfo(cmd.OutOrStdout())
		},
	}
}
