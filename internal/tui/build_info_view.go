package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-six-notes/models"
)

// RenderBuildInfo renders the version command output.
func RenderBuildInfo(info models.BuildInfo) string {
	field := func(v string) string { return models.OrNA(strings.TrimSpace(v)) }

	return renderPage("ABOUT", fmt.Sprintf("Application: six-notes\nVersion: %s\nDate: %s\nCommit: %s",
		field(info.Version), field(info.Date), field(info.Commit)))
}
