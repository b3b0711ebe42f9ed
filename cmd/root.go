package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kyco/deadlockdev/internal/config"
	"github.com/kyco/deadlockdev/internal/server"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "deadlockdev",
	Short: "A local development server for the Deadlock Stats front-end",
	Long: `deadlockdev serves the Deadlock Stats pages, simulates the Steam login,
answers mock API calls and serves static files from the web root.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration; an explicit --config must exist
		cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to apply flags: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Serve until Ctrl+C
		return server.New(cfg, os.Stdout).Run(ctx)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the config file")
	rootCmd.Flags().IntP("port", "p", config.DefaultPort, "Port to listen on")
	rootCmd.Flags().StringP("web-root", "w", config.DefaultWebRoot, "Directory to serve static files from")
	rootCmd.Flags().Bool("watch", false, "Log changes to files under the web root")
}
