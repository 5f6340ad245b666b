// Package nav is the terminal navigation engine behind the interactive add
// and edit commands. Every screen ends in an Outcome: a confirmed value, a
// step back, or an exit from the whole session.
package nav

// Kind tags an Outcome.
type Kind int

const (
	KindValue Kind = iota
	KindBack
	KindExit
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindBack:
		return "back"
	case KindExit:
		return "exit"
	}
	return "unknown"
}

// Outcome is the result of a screen. Only KindValue carries a payload.
type Outcome[T any] struct {
	kind  Kind
	value T
}

// Value is a confirmed selection or entry.
func Value[T any](v T) Outcome[T] { return Outcome[T]{kind: KindValue, value: v} }

// Back steps back one level.
func Back[T any]() Outcome[T] { return Outcome[T]{kind: KindBack} }

// Exit abandons the session.
func Exit[T any]() Outcome[T] { return Outcome[T]{kind: KindExit} }

func (o Outcome[T]) Kind() Kind { return o.kind }

// Get returns the payload and true for KindValue outcomes.
func (o Outcome[T]) Get() (T, bool) {
	return o.value, o.kind == KindValue
}
