package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lodgemusic/lodgectl/internal/console"
	"github.com/lodgemusic/lodgectl/internal/media"
)

// renderListTab renders a selectable list with the tab's activity journal
// underneath.
func (m Model) renderListTab() string {
	styles := m.theme.Styles()
	rows := m.screens.rows(m.tab)

	var b strings.Builder
	if sub := m.subheader(); sub != "" {
		b.WriteString(sub)
		b.WriteString("\n")
	}

	height := m.listHeight()
	if len(rows) == 0 {
		b.WriteString(styles.FaintText.Render(m.emptyText()))
		b.WriteString("\n")
		height--
	}
	start, end := window(len(rows), m.cursor[m.tab], height)
	titleWidth := maxInt(m.width/2, 20)
	for i := start; i < end; i++ {
		r := rows[i]
		line := padRight(truncate(r.Title, titleWidth), titleWidth) + "  " + truncate(r.Detail, maxInt(m.width-titleWidth-16, 10))
		if i == m.cursor[m.tab] {
			line = styles.Selected.Width(m.width - 12).Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		if r.Badge != "" {
			line += " " + styles.StatusStyle(r.Badge).Render(r.Badge)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderJournal(m.screens.journal(m.tab)))
	return b.String()
}

// subheader shows per-tab context above the list.
func (m Model) subheader() string {
	styles := m.theme.Styles()
	s := m.screens
	switch m.tab {
	case TabYouTube:
		return queryLine(styles, s.YouTube.Query())
	case TabSpotify:
		return queryLine(styles, s.Spotify.Query())
	case TabCalm:
		category := s.Calm.Category()
		if category == "" {
			category = "All"
		}
		return styles.MutedText.Render("Category: ") + styles.AccentText.Render(titleCase(category)) +
			styles.FaintText.Render(fmt.Sprintf("  (%d categories, c/C to cycle)", len(s.Calm.Categories())))
	case TabRoon:
		return m.nowPlayingLine()
	case TabAssistant:
		line := styles.MutedText.Render("Type: ") + styles.AccentText.Render(titleCase(s.Assistant.MediaType()))
		if q := s.Assistant.Queue(); len(q.Items) > 0 {
			current := "-"
			if item, ok := q.Current(); ok {
				current = item.Label()
			}
			line += styles.FaintText.Render(fmt.Sprintf("  Queue: %d items, now %s", len(q.Items), truncate(current, 40)))
		}
		return line + m.volumeLine(s.AssistantVolume)
	case TabAlexa:
		return styles.FaintText.Render("Enter sends a quick command, / asks for anything") + m.volumeLine(s.AlexaVolume)
	}
	return ""
}

func (m Model) volumeLine(vol *console.VolumeControl) string {
	if vol == nil {
		return ""
	}
	text := vol.LevelText()
	if text == "" {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.AccentText
	if text == "unavailable" {
		style = styles.WarningText
	}
	return styles.MutedText.Render("  Volume: ") + style.Render(text)
}

func queryLine(styles Styles, query string) string {
	if query == "" {
		return styles.FaintText.Render("Press / to search")
	}
	return styles.MutedText.Render("Results for ") + styles.AccentText.Render(fmt.Sprintf("%q", query))
}

func (m Model) nowPlayingLine() string {
	styles := m.theme.Styles()
	r := m.screens.Roon
	if r.Zone() == "" {
		return styles.FaintText.Render("Select a zone with enter or [ ]")
	}
	snap := r.NowPlaying.Snapshot()
	np := snap.Value
	if !snap.Has || np == nil {
		return styles.FaintText.Render("Nothing playing")
	}
	state := np.State
	if state == "" {
		state = media.StateIdle
	}
	line := styles.StatusStyle(state).Render(state)
	if np.Current != nil {
		line += " " + styles.Text.Render(np.Current.Label())
	}
	return line
}

func (m Model) emptyText() string {
	switch m.tab {
	case TabYouTube, TabSpotify, TabAssistant:
		return "No results"
	case TabCalm:
		return "No channels"
	case TabRoon:
		return "No zones"
	}
	return "Nothing here yet"
}

// renderJournal shows the newest activity entries.
func (m Model) renderJournal(j *console.Journal) string {
	styles := m.theme.Styles()
	if j == nil {
		return ""
	}
	entries := j.Entries()
	if len(entries) > journalLines {
		entries = entries[len(entries)-journalLines:]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := styles.InfoText
		switch e.Level {
		case console.LevelOK:
			style = styles.SuccessText
		case console.LevelErr:
			style = styles.DangerText
		}
		lines = append(lines, styles.FaintText.Render(clockTime(e.Time))+" "+style.Render(truncate(e.Message, maxInt(m.width-16, 20))))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.FaintText.Render("No activity"))
	}
	return styles.Pane.Width(maxInt(m.width-2, 10)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// listHeight is the number of list lines that fit above the journal.
func (m Model) listHeight() int {
	return maxInt(m.height-chromeLines-journalLines-2, 3)
}

// window returns the [start, end) slice of n rows that keeps cursor visible
// within height lines.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = maxInt(0, minInt(start, n-height))
	return start, start + height
}
