package nav

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CFCF")).Bold(true).Padding(1, 2)
	footerStyle = lipgloss.NewStyle().MarginTop(1)
	helpBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// helpOverlay is the full-screen key reference shared by list and input
// screens. While shown, an exit key still exits and any other key dismisses it.
type helpOverlay struct {
	shown bool
	model help.Model
}

func newHelpOverlay() helpOverlay {
	return helpOverlay{model: help.New()}
}

func (h helpOverlay) view(keys help.KeyMap) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(h.model.FullHelpView(keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(h.model.Styles.ShortDesc.Render("press any key to return"))
	return helpBox.Render(b.String())
}

func (h helpOverlay) footer(keys help.KeyMap) string {
	return footerStyle.Render(h.model.ShortHelpView(keys.ShortHelp()))
}
