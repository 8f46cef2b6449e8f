package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint"
)

var (
	scanLocations string
	scanIgnore    string
	scanDryRun    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rename all eligible notes in the base locations",
	Long: `Walk the direct entries of every configured base location and rename
the notes that qualify. Useful to catch up on notes created while no
watcher was running. With --dry-run the planned renames are printed but
nothing is touched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vaultPath := resolveVault()
		settings := applyOverrides(loadSettings(vaultPath), scanLocations, scanIgnore)

		rt, err := notemint.New(vaultPath,
			notemint.WithSettings(settings),
			notemint.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize notemint", err)
		}

		renames, err := rt.Orchestrator.Scan(context.Background(), scanDryRun)
		if err != nil {
			fatal("Scan failed", err)
		}

		if scanDryRun {
			for _, r := range renames {
				fmt.Printf("%s -> %s\n", r.OldPath, r.NewPath)
			}
		}
		fmt.Printf("%d note(s) %s\n", len(renames), scanVerb())
	},
}

func scanVerb() string {
	if scanDryRun {
		return "would be renamed"
	}
	return "renamed"
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanLocations, "locations", "", "Comma-separated base locations (overrides the settings file)")
	scanCmd.Flags().StringVar(&scanIgnore, "ignore", "", "Comma-separated ignore patterns (overrides the settings file)")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Plan only; do not rename")
}
