package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	createStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Italic(true)

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// View renders the search line and the option list.
func (p *FolderPicker) View() string {
	var b strings.Builder

	b.WriteString(searchStyle.Render("Folder: "))
	b.WriteString(p.search)
	b.WriteString("█\n")

	opts := p.Options()
	if len(opts) == 0 {
		b.WriteString(emptyStyle.Render("  no matching folders"))
		return b.String()
	}

	for i, opt := range opts {
		cursor := "  "
		style := normalStyle
		if i == p.highlight {
			cursor = "> "
			style = selectedStyle
		}
		label := opt.Folder
		if opt.Create {
			label = createStyle.Render(fmt.Sprintf("+ Create %q", opt.Folder))
			if i == p.highlight {
				label = selectedStyle.Render(fmt.Sprintf("+ Create %q", opt.Folder))
			}
		} else {
			label = style.Render(label)
		}
		b.WriteString(cursor)
		b.WriteString(label)
		if i < len(opts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
