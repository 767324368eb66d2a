package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// Color palette — calm study tones
var (
	Primary   = lipgloss.Color("#8B5CF6") // Violet
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Alta      = lipgloss.Color("#F43F5E") // Rose
	Media     = lipgloss.Color("#F59E0B") // Amber
	Baja      = lipgloss.Color("#22C55E") // Green
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

var badgeStyles = map[spacedrep.Priority]lipgloss.Style{
	spacedrep.PriorityAlta:  lipgloss.NewStyle().Foreground(Text).Background(Alta).Bold(true).Padding(0, 1),
	spacedrep.PriorityMedia: lipgloss.NewStyle().Foreground(Text).Background(Media).Bold(true).Padding(0, 1),
	spacedrep.PriorityBaja:  lipgloss.NewStyle().Foreground(Text).Background(Baja).Bold(true).Padding(0, 1),
}

// PriorityBadge renders a colored tier badge ("ALTA", "MEDIA", "BAJA").
func PriorityBadge(p spacedrep.Priority) string {
	style, ok := badgeStyles[p]
	if !ok {
		style = lipgloss.NewStyle().Foreground(TextDim).Padding(0, 1)
	}
	switch p {
	case spacedrep.PriorityAlta:
		return style.Render("ALTA")
	case spacedrep.PriorityMedia:
		return style.Render("MEDIA")
	case spacedrep.PriorityBaja:
		return style.Render("BAJA")
	default:
		return style.Render(string(p))
	}
}
