package models

import "fmt"

// BuildInfo is the build metadata injected with -ldflags -X.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// OrNA returns v, or "N/A" when v is empty.
func OrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		OrNA(b.Version), OrNA(b.Date), OrNA(b.Commit))
}

// ServerInfo describes a running record service.
type ServerInfo struct {
	Version         string `json:"version"`
	RecordType      string `json:"record_type"`
	Slots           int    `json:"slots"`
	MaxContentBytes int    `json:"max_content_bytes,omitempty"`
}
