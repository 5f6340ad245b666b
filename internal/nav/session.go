package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrNoWeeks is returned when a flow has nothing to select.
	ErrNoWeeks = errors.New("no weeks to choose from")
	// ErrRejected marks a commit error that leaves the input open.
	ErrRejected = errors.New("value rejected")
)

// Result summarizes a finished session.
type Result struct {
	// Exited is true when the user abandoned the session with an exit key.
	Exited bool
	// Committed counts values persisted during the session.
	Committed int
}

// Session hosts one screen at a time and moves between them through the
// transition table.
type Session struct {
	flow  Flow
	state State

	week       int
	weekChosen bool
	category   int

	list  *ListSelect
	input *NumericInput
	flash *ConfirmationFlash

	flashSeq      int
	flashDuration time.Duration
	in            io.Reader
	out           io.Writer

	result Result
	err    error
}

// Option configures a Session.
type Option func(*Session)

func WithFlashDuration(d time.Duration) Option {
	return func(s *Session) { s.flashDuration = d }
}

func WithInput(r io.Reader) Option {
	return func(s *Session) { s.in = r }
}

func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// NewSession returns a session positioned on week selection.
func NewSession(flow Flow, opts ...Option) *Session {
	s := &Session{
		flow:          flow,
		state:         WeekSelect,
		flashDuration: DefaultFlashDuration,
		in:            os.Stdin,
		out:           os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State is the active step.
func (s *Session) State() State { return s.state }

// Result reports what happened so far.
func (s *Session) Result() Result { return s.result }

// Err is the commit error that ended the session, if any.
func (s *Session) Err() error { return s.err }

func (s *Session) Init() tea.Cmd {
	return s.enter(WeekSelect)
}

// enter builds the screen for state and returns its start command.
func (s *Session) enter(state State) tea.Cmd {
	s.state = state
	switch state {
	case WeekSelect:
		items, initial := s.flow.Weeks()
		if s.weekChosen {
			initial = s.week
		}
		s.list = NewListSelect(weekTitle, items, initial)
	case CategorySelect:
		s.list = NewListSelect(categoryTitle, s.flow.Categories(s.week), s.category)
	case ValueInput:
		prompt, current := s.flow.Value(s.week, s.category)
		s.input = NewNumericInput(prompt, current)
	case Flash:
		return s.flash.Init()
	case Done:
		return tea.Quit
	}
	return nil
}

const (
	weekTitle     = "Select week:"
	categoryTitle = "Select category:"
)

// advance applies an outcome kind to the current state.
func (s *Session) advance(k Kind) tea.Cmd {
	if k == KindExit {
		s.result.Exited = true
	}
	next, ok := Next(s.state, k)
	if !ok {
		return nil
	}
	return s.enter(next)
}

func (s *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s, s.routeKey(msg)

	case ListDone:
		if idx, ok := msg.Outcome.Get(); ok {
			if s.state == WeekSelect {
				s.week = idx
				s.weekChosen = true
				s.category = 0
			} else {
				s.category = idx
			}
		}
		return s, s.advance(msg.Outcome.Kind())

	case InputDone:
		amount, ok := msg.Outcome.Get()
		if !ok {
			return s, s.advance(msg.Outcome.Kind())
		}
		message, err := s.flow.Commit(s.week, s.category, amount)
		if errors.Is(err, ErrRejected) {
			s.input.Reject(err.Error())
			return s, nil
		}
		if err != nil {
			s.err = err
			return s, s.enter(Done)
		}
		s.result.Committed++
		s.flashSeq++
		s.flash = NewConfirmationFlash(s.flashSeq, message, s.flashDuration)
		return s, s.advance(KindValue)

	case FlashDone:
		if s.state != Flash || msg.id != s.flashSeq {
			return s, nil
		}
		return s, s.advance(KindValue)
	}
	return s, nil
}

func (s *Session) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch s.state {
	case WeekSelect, CategorySelect:
		_, cmd = s.list.Update(msg)
	case ValueInput:
		_, cmd = s.input.Update(msg)
	}
	return cmd
}

func (s *Session) View() string {
	switch s.state {
	case WeekSelect, CategorySelect:
		return s.list.View()
	case ValueInput:
		return s.input.View()
	case Flash:
		return s.flash.View()
	}
	return ""
}

// Run drives flow in a single terminal program. The terminal enters raw mode
// once when the program starts and is restored on every return path,
// including panics inside the flow and cancellation of ctx.
func Run(ctx context.Context, flow Flow, opts ...Option) (Result, error) {
	if items, _ := flow.Weeks(); len(items) == 0 {
		return Result{}, ErrNoWeeks
	}

	s := NewSession(flow, opts...)
	p := tea.NewProgram(s,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	final, err := p.Run()
	if err != nil {
		return s.result, fmt.Errorf("interactive session: %w", err)
	}
	done := final.(*Session)
	return done.result, done.err
}
