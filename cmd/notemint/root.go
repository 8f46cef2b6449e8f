package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint/pkg/config"
)

var (
	verbose bool
	vault   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notemint",
	Short: "Rename new notes to stable UUID filenames",
	Long: `Notemint watches the base locations of a markdown vault and renames
newly created notes to canonical UUID filenames, decoupling a note's
identity from its human-readable title so links stay stable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&vault, "vault", "", "Vault root (defaults to the working directory)")
}

// resolveVault returns the vault root from the flag or the working
// directory.
func resolveVault() string {
	if vault != "" {
		return vault
	}
	wd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get working directory", err)
	}
	return wd
}

// loadSettings reads the vault's settings file if present. Flag overrides
// are applied by the individual commands.
func loadSettings(vaultPath string) config.Settings {
	settings, err := config.Load(filepath.Join(vaultPath, config.DefaultFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read settings file", "error", err)
		}
		return config.Settings{}
	}
	return settings
}

// applyOverrides lets command-line flags win over the settings file.
func applyOverrides(settings config.Settings, locations, ignore string) config.Settings {
	if locations != "" {
		settings.BaseLocations = locations
	}
	if ignore != "" {
		settings.IgnorePatterns = ignore
	}
	return settings
}
