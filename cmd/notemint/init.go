package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint/pkg/config"
)

var (
	initLocations string
	initIgnore    string
	initForce     bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the vault settings file",
	Long:  `Create ` + config.DefaultFileName + ` in the vault root with the given base locations and ignore patterns.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vaultPath := resolveVault()
		path := filepath.Join(vaultPath, config.DefaultFileName)

		if _, err := os.Stat(path); err == nil && !initForce {
			fatal("Settings file already exists", fmt.Errorf("%s (use --force to overwrite)", path))
		}

		settings := config.Settings{
			BaseLocations:  initLocations,
			IgnorePatterns: initIgnore,
		}
		if err := config.Save(path, settings); err != nil {
			fatal("Failed to write settings", err)
		}

		fmt.Printf("Settings written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initLocations, "locations", "", "Comma-separated base locations")
	initCmd.Flags().StringVar(&initIgnore, "ignore", "", "Comma-separated ignore patterns")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing settings file")
}
