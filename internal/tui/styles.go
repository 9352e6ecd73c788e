package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App         lipgloss.Style
	Pane        lipgloss.Style
	PaneActive  lipgloss.Style
	Title       lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Target      lipgloss.Style
	Manual      lipgloss.Style
	NewFolder   lipgloss.Style
	Tag         lipgloss.Style
	NewTag      lipgloss.Style
	Match       lipgloss.Style // fuzzy filter match highlight
	Pending     lipgloss.Style
	Scanning    lipgloss.Style
	Label       lipgloss.Style
	Help        lipgloss.Style
	Empty       lipgloss.Style
	Error       lipgloss.Style
	HintKey     lipgloss.Style
	HintDesc    lipgloss.Style
	Modal       lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}
	warn := lipgloss.AdaptiveColor{Light: "#8A5A2B", Dark: "#C8955A"}
	bad := lipgloss.AdaptiveColor{Light: "#8A2B2B", Dark: "#C85A5A"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Row: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		RowSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Target: lipgloss.NewStyle().
			Foreground(primary),

		Manual: lipgloss.NewStyle().
			Foreground(accent).
			Italic(true),

		NewFolder: lipgloss.NewStyle().
			Foreground(warn),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		NewTag: lipgloss.NewStyle().
			Foreground(warn),

		Match: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Pending: lipgloss.NewStyle().
			Foreground(subtle),

		Scanning: lipgloss.NewStyle().
			Foreground(accent),

		Label: lipgloss.NewStyle().
			Foreground(subtle).
			Width(10),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(bad),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}
