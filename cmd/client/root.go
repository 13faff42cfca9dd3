package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-six-notes/internal/client"
	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logFile    string

	app *client.App
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "six-notes",
	Short: "Six note slots kept in sync with a record server",
	Long: `six-notes keeps six plain-text notes in a local store and synchronizes
them with a record server. Sync is off until an account is signed in and
sync is enabled.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipAppAnnotation] == "true" {
			return nil
		}

		cfg, err := config.GetClientConfig(configPath)
		if err != nil {
			return err
		}
		if logFile != "" {
			cfg.Log.File = logFile
		}

		log = logger.NewClientLogger("six-notes-client", cfg.Log.File)
		app, err = client.NewApp(cmd.Context(), cfg, log)
		if err != nil {
			log.Err(err).Msg("init client app error")
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	},
}

// skipAppAnnotation marks commands that run without the local store.
const skipAppAnnotation = "skip-app"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if log != nil {
			log.Err(err).Msg("command failed")
		}
		if app != nil {
			_ = app.Close()
		}
		fmt.Fprintln(os.Stderr, "Error:", client.Describe(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the client log file")
}
