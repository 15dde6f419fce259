package intel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EEEEEE"))
	mutedValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	highValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	mediumValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	highMarkerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	mediumMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	plainMarkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8A33D"))
	noteStyle         = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#A0AEC0"))
	sectionBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#444444")).
				Padding(0, 1)
)

// View renders sections into a terminal block. All formatting decisions were
// made by Render; this only applies styles.
func View(sections []Section, width int) string {
	if len(sections) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(sections))
	for _, section := range sections {
		lines := []string{sectionTitleStyle.Render(strings.ToUpper(section.Title))}
		for _, entry := range section.Entries {
			lines = append(lines, viewEntry(entry)...)
		}
		box := sectionBoxStyle.Width(max(24, width)).Render(strings.Join(lines, "\n"))
		blocks = append(blocks, box)
	}
	return strings.Join(blocks, "\n")
}

func viewEntry(entry Entry) []string {
	value := styleForEntry(entry).Render(entry.Value)
	if entry.BadgeColor != "" {
		badge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111111")).
			Background(lipgloss.Color(entry.BadgeColor)).
			Padding(0, 1)
		value = badge.Render(entry.Value)
	}
	line := labelStyle.Render(entry.Label+":") + " " + value
	if entry.Marker != "" {
		line += " " + markerStyle(entry.Urgency).Render("["+entry.Marker+"]")
	}
	lines := []string{line}
	if entry.Note != "" {
		lines = append(lines, noteStyle.Render("  "+entry.Note))
	}
	return lines
}

func styleForEntry(entry Entry) lipgloss.Style {
	if entry.Missing {
		return mutedValueStyle
	}
	switch entry.Urgency {
	case UrgencyHigh:
		return highValueStyle
	case UrgencyMedium:
		return mediumValueStyle
	default:
		return valueStyle
	}
}

func markerStyle(urgency Urgency) lipgloss.Style {
	switch urgency {
	case UrgencyHigh:
		return highMarkerStyle
	case UrgencyMedium:
		return mediumMarkerStyle
	default:
		return plainMarkerStyle
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
