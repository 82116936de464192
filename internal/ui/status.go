package ui

import (
	"fmt"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/health"
)

// renderStatus renders one line per backend service from the latest health
// cycle.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	snap := m.screens.Status.Health.Snapshot()

	var b strings.Builder
	if !snap.Has {
		b.WriteString(styles.WarningText.Render("Waiting for the first health check..."))
		b.WriteString("\n")
		return b.String()
	}

	online, total := health.Summary(snap.Value)
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d of %d services online, checked %s", online, total, clockTime(snap.LastUpdated))))
	b.WriteString("\n\n")

	b.WriteString(styles.FaintText.Render(padRight("SERVICE", 16) + padRight("STATUS", 10) + padRight("LATENCY", 10) + "URL"))
	b.WriteString("\n")
	for i, svc := range snap.Value {
		line := padRight(truncate(svc.Label, 15), 16)
		badge := styles.StatusStyle(string(svc.Status)).Render(padRight(string(svc.Status), 7))
		rest := "  " + padRight(formatLatency(svc.Latency), 10) + truncate(svc.URL, maxInt(m.width-40, 20))
		if i == m.cursor[TabStatus] {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line + badge + styles.MutedText.Render(rest))
		b.WriteString("\n")
		if svc.Error != "" {
			b.WriteString(styles.DangerText.Render("  " + truncate(svc.Error, maxInt(m.width-4, 20))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("r or enter to check now"))
	return b.String()
}
