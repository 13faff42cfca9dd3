package main

import (
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/tui"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print build information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBuildInfo(models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
