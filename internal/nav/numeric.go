package nav

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	errValueRequired = "value required"
	errNotANumber    = "enter a number such as 2 or 1.5"
	errNegative      = "hours must be >= 0"
)

// InputDone is sent when a NumericInput terminates.
type InputDone struct {
	Outcome Outcome[float64]
}

func inputDone(o Outcome[float64]) tea.Cmd {
	return func() tea.Msg { return InputDone{Outcome: o} }
}

// NumericInput reads a non-negative decimal. Invalid entries are reported
// inline and the screen keeps accepting input.
type NumericInput struct {
	Prompt string

	current *float64
	buf     string
	err     string
	help    helpOverlay
}

// NewNumericInput returns an input. When current is non-nil an empty
// confirm yields it unchanged.
func NewNumericInput(prompt string, current *float64) *NumericInput {
	return &NumericInput{Prompt: prompt, current: current, help: newHelpOverlay()}
}

// Buffer is the text typed so far.
func (n *NumericInput) Buffer() string { return n.buf }

// Err is the inline error shown under the prompt, if any.
func (n *NumericInput) Err() string { return n.err }

// Reject clears the buffer and shows msg under the prompt.
func (n *NumericInput) Reject(msg string) {
	n.buf = ""
	n.err = msg
}

func (n *NumericInput) Init() tea.Cmd { return nil }

func (n *NumericInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}

	if n.help.shown {
		if key.Matches(km, inputKeys.Exit) {
			n.buf = ""
			return n, inputDone(Exit[float64]())
		}
		n.help.shown = false
		return n, nil
	}

	switch {
	case key.Matches(km, inputKeys.Exit):
		n.buf = ""
		return n, inputDone(Exit[float64]())
	case key.Matches(km, inputKeys.Back):
		n.buf = ""
		return n, inputDone(Back[float64]())
	case key.Matches(km, inputKeys.Help):
		n.help.shown = true
	case key.Matches(km, inputKeys.Delete):
		if n.buf != "" {
			n.buf = n.buf[:len(n.buf)-1]
		}
	case key.Matches(km, inputKeys.Confirm):
		return n, n.confirm()
	case km.Type == tea.KeyRunes:
		for _, r := range km.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				n.buf += string(r)
			}
		}
	}
	return n, nil
}

func (n *NumericInput) confirm() tea.Cmd {
	if n.buf == "" {
		if n.current != nil {
			n.err = ""
			return inputDone(Value(*n.current))
		}
		n.err = errValueRequired
		return nil
	}

	v, err := strconv.ParseFloat(n.buf, 64)
	switch {
	case err != nil || math.IsNaN(v) || math.IsInf(v, 0):
		n.err = errNotANumber
	case v < 0:
		n.err = errNegative
	default:
		n.err = ""
		return inputDone(Value(v))
	}
	n.buf = ""
	return nil
}

func (n *NumericInput) View() string {
	if n.help.shown {
		return n.help.view(inputKeys)
	}

	var b strings.Builder
	prompt := n.Prompt
	if n.current != nil {
		prompt = fmt.Sprintf("%s [%.1f]", prompt, *n.current)
	}
	b.WriteString(titleStyle.Render(prompt + ":"))
	b.WriteString("\n")
	b.WriteString(cursorStyle.Render("> ") + n.buf + "█\n")
	if n.err != "" {
		b.WriteString(errorStyle.Render(n.err))
		b.WriteString("\n")
	}
	b.WriteString(n.help.footer(inputKeys))
	return b.String()
}
