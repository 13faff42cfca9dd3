package tui

import (
	"strings"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
	} else {
		b.WriteString("-")
	}

	return appStyle.Render(b.String())
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// fitText shortens v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// firstLine returns the first non-empty line of v.
func firstLine(v string) string {
	for line := range strings.Lines(v) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
