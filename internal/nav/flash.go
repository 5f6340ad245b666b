package nav

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFlashDuration is how long a confirmation stays on screen.
const DefaultFlashDuration = time.Second

// FlashDone is sent when a ConfirmationFlash has been shown for its duration.
type FlashDone struct {
	id int
}

// ConfirmationFlash shows a message for a fixed time. It ignores all input.
type ConfirmationFlash struct {
	Message  string
	Duration time.Duration

	id int
}

func NewConfirmationFlash(id int, message string, d time.Duration) *ConfirmationFlash {
	return &ConfirmationFlash{Message: message, Duration: d, id: id}
}

func (f *ConfirmationFlash) Init() tea.Cmd {
	id := f.id
	return tea.Tick(f.Duration, func(time.Time) tea.Msg { return FlashDone{id: id} })
}

func (f *ConfirmationFlash) Update(tea.Msg) (tea.Model, tea.Cmd) { return f, nil }

func (f *ConfirmationFlash) View() string {
	return flashStyle.Render(f.Message)
}
