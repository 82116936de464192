package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lodgemusic/lodgectl/internal/health"
)

// renderHeader renders the status bar: logo, service health, current target
// and the busy indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("lodge", styles.Logo)}

	snap := m.screens.Status.Health.Snapshot()
	if !snap.Has {
		parts = append(parts, bg.Render("Checking services...", styles.WarningText.Bold(true)))
	} else {
		online, total := health.Summary(snap.Value)
		style := styles.SuccessText
		switch {
		case online == 0:
			style = styles.DangerText
		case online < total:
			style = styles.WarningText.Bold(true)
		}
		parts = append(parts, bg.Render(fmt.Sprintf("● %d/%d online", online, total), style))
		if m.width >= LayoutCompactWidth {
			parts = append(parts, bg.Render("checked "+clockTime(snap.LastUpdated), styles.MutedText))
		}
	}

	if label, value := m.screens.selector(m.tab); label != "" {
		shown := value
		if shown == "" {
			shown = "none"
		}
		parts = append(parts,
			bg.Render(label+":", styles.MutedText)+bg.Spaces(1)+bg.Render(truncate(shown, 28), styles.Text))
	}

	if m.pending > 0 {
		parts = append(parts, bg.Render(m.spinner.View()+" working", styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderTabBar renders the tab strip with the active tab highlighted.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		title := t.String()
		if compact {
			title = truncate(title, 8)
		}
		if t == m.tab {
			tabs = append(tabs, styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, styles.Tab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderFooter shows the search input while searching, otherwise the key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.searching {
		return styles.Footer.Width(m.width).Render(m.input.View())
	}
	hints := make([]string, 0, 8)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+strings.ToLower(h.Desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(hints, " · "))
}

// renderContent renders the active tab body.
func (m Model) renderContent() string {
	switch m.tab {
	case TabStatus:
		return m.renderStatus()
	case TabLogs:
		return m.renderLogs()
	default:
		return m.renderListTab()
	}
}
