package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quiverd/notemint"
)

var (
	watchLocations string
	watchIgnore    string
	watchDelay     time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and rename new notes",
	Long: `Run the watcher until interrupted. Notes created or moved directly
into a configured base location are renamed to a UUID after a short
settling delay.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vaultPath := resolveVault()
		settings := applyOverrides(loadSettings(vaultPath), watchLocations, watchIgnore)

		rt, err := notemint.New(vaultPath,
			notemint.WithSettings(settings),
			notemint.WithSettleDelay(watchDelay),
			notemint.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize notemint", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := rt.Start(ctx); err != nil {
			fatal("Failed to start watching", err)
		}

		locations := rt.Settings.Snapshot().BaseLocations
		if len(locations) == 0 {
			slog.Warn("no base locations configured; nothing will be renamed")
		} else {
			slog.Info("watching vault", "path", vaultPath, "locations", locations)
		}

		<-ctx.Done()
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Stop(shutdownCtx); err != nil {
			slog.Warn("shutdown incomplete", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchLocations, "locations", "", "Comma-separated base locations (overrides the settings file)")
	watchCmd.Flags().StringVar(&watchIgnore, "ignore", "", "Comma-separated ignore patterns (overrides the settings file)")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 0, "Settling delay before a new note is renamed")
}
