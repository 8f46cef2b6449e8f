package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint"
)

var (
	renameLocations string
	renameIgnore    string
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <note>",
	Short: "Rename one note to a UUID now",
	Long: `Rename a single note (vault-relative path) to a canonical UUID
immediately. The base-location check is skipped -- you picked the note --
but a note that is already an identifier, matches an ignore pattern, or
still contains a template marker is refused. Requires at least one
configured base location.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vaultPath := resolveVault()
		settings := applyOverrides(loadSettings(vaultPath), renameLocations, renameIgnore)

		rt, err := notemint.New(vaultPath,
			notemint.WithSettings(settings),
			notemint.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize notemint", err)
		}

		// The confirmation naming old and new filename comes from the
		// notifier; only failures need handling here.
		if _, err := rt.Orchestrator.RenameNow(context.Background(), args[0]); err != nil {
			fatal("Rename refused", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().StringVar(&renameLocations, "locations", "", "Comma-separated base locations (overrides the settings file)")
	renameCmd.Flags().StringVar(&renameIgnore, "ignore", "", "Comma-separated ignore patterns (overrides the settings file)")
}
