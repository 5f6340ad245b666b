package nav

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ListDone is sent when a ListSelect terminates. The payload is the
// selected index.
type ListDone struct {
	Outcome Outcome[int]
}

func listDone(o Outcome[int]) tea.Cmd {
	return func() tea.Msg { return ListDone{Outcome: o} }
}

// ListSelect picks one item from a list. Movement is clamped at both ends.
type ListSelect struct {
	Title string
	Items []string

	index int
	help  helpOverlay
}

// NewListSelect returns a list with the cursor on initial, clamped to the items.
func NewListSelect(title string, items []string, initial int) *ListSelect {
	l := &ListSelect{Title: title, Items: items, help: newHelpOverlay()}
	l.index = l.clamp(initial)
	return l
}

func (l *ListSelect) clamp(i int) int {
	if i >= len(l.Items) {
		i = len(l.Items) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Index is the cursor position.
func (l *ListSelect) Index() int { return l.index }

// HelpShown reports whether the key reference is displayed.
func (l *ListSelect) HelpShown() bool { return l.help.shown }

func (l *ListSelect) Init() tea.Cmd { return nil }

func (l *ListSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.help.shown {
		if key.Matches(km, listKeys.Exit) {
			return l, listDone(Exit[int]())
		}
		l.help.shown = false
		return l, nil
	}

	switch {
	case key.Matches(km, listKeys.Exit):
		return l, listDone(Exit[int]())
	case key.Matches(km, listKeys.Back):
		return l, listDone(Back[int]())
	case key.Matches(km, listKeys.Help):
		l.help.shown = true
	case key.Matches(km, listKeys.Up):
		l.index = l.clamp(l.index - 1)
	case key.Matches(km, listKeys.Down):
		l.index = l.clamp(l.index + 1)
	case key.Matches(km, listKeys.First):
		l.index = 0
	case key.Matches(km, listKeys.Last):
		l.index = l.clamp(len(l.Items) - 1)
	case key.Matches(km, listKeys.Confirm):
		if len(l.Items) > 0 {
			return l, listDone(Value(l.index))
		}
	}
	return l, nil
}

func (l *ListSelect) View() string {
	if l.help.shown {
		return l.help.view(listKeys)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(l.Title))
	b.WriteString("\n")
	for i, item := range l.Items {
		if i == l.index {
			b.WriteString(cursorStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	b.WriteString(l.help.footer(listKeys))
	return b.String()
}
