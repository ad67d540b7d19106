package render

import "charm.land/lipgloss/v2"

var (
	primary   = lipgloss.Color("#8B5CF6")
	secondary = lipgloss.Color("#14B8A6")
	accent    = lipgloss.Color("#F97316")
	success   = lipgloss.Color("#22C55E")
	danger    = lipgloss.Color("#F43F5E")
	text      = lipgloss.Color("#F8FAFC")
	textDim   = lipgloss.Color("#94A3B8")
	border    = lipgloss.Color("#334155")
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	body    lipgloss.Style
	dim     lipgloss.Style
	hidden  lipgloss.Style
	shown   lipgloss.Style
	answer  lipgloss.Style
	warning lipgloss.Style
	card    lipgloss.Style
}

func colorStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		label:   lipgloss.NewStyle().Foreground(secondary),
		body:    lipgloss.NewStyle().Foreground(text),
		dim:     lipgloss.NewStyle().Foreground(textDim).Italic(true),
		hidden:  lipgloss.NewStyle().Foreground(danger).Strikethrough(true),
		shown:   lipgloss.NewStyle().Foreground(success),
		answer:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		warning: lipgloss.NewStyle().Foreground(accent),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// plainStyles keeps the layout and drops every color and attribute.
func plainStyles() styles {
	none := lipgloss.NewStyle()
	return styles{
		title:   none,
		label:   none,
		body:    none,
		dim:     none,
		hidden:  none,
		shown:   none,
		answer:  none,
		warning: none,
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
}
