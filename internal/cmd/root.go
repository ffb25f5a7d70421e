// Package cmd implements the beacon command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/beacon/internal/config"
)

var (
	// configPath overrides the default config file location.
	configPath string

	// browseHistory starts the picker in the exclusive history-browse mode.
	browseHistory bool
)

// NewRootCmd builds the beacon command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "beacon",
		Short: "Interactive launcher with frecency-ranked choices",
		Long: `beacon resolves free-text queries against installed commands, keyword
plugins, and a live bookmark index, ranks the results by pinned rules,
prefix matches and past usage, and opens whatever you pick.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(browseHistory)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	root.Flags().BoolVar(&browseHistory, "history", false, "browse past selections instead of searching")

	root.AddCommand(
		newQueryCmd(),
		newIndexCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the CLI.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "beacon: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the effective configuration.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// logLevel maps the configured level name to slog.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
