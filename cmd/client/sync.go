package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-six-notes/internal/client"
	"github.com/MKhiriev/go-six-notes/internal/tui"
	"github.com/spf13/cobra"
)

var mirrorDir string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.SyncNow(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sync complete.")
		return nil
	},
}

var enableSyncCmd = &cobra.Command{
	Use:   "enable-sync",
	Short: "Turn sync on and run a pass",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.SetSyncEnabled(cmd.Context(), true); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sync enabled.")
		if err := app.SyncIfEnabled(cmd.Context()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Sync postponed:", describe(err))
		}
		return nil
	},
}

var disableSyncCmd = &cobra.Command{
	Use:   "disable-sync",
	Short: "Turn sync off; notes stay local",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.SetSyncEnabled(cmd.Context(), false); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sync disabled.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account, sync and per-note state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := app.Status(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStatus(status.Login, status.Account, status.Sync, status.Notes))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep syncing in the foreground until interrupted",
	Long: `watch runs the periodic and debounced sync, listens for change
notifications from the server and, with --mirror, keeps one text file per
slot in a directory: editing a file edits the note.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if mirrorDir != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Mirroring notes to %s. Press Ctrl+C to stop.\n", mirrorDir)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes. Press Ctrl+C to stop.")
		}
		return app.Watch(ctx, mirrorDir)
	},
}

func describe(err error) string {
	return client.Describe(err)
}

func init() {
	watchCmd.Flags().StringVarP(&mirrorDir, "mirror", "m", "", "Directory mirroring the notes as slot-N.txt files")

	rootCmd.AddCommand(syncCmd, enableSyncCmd, disableSyncCmd, statusCmd, watchCmd)
}
