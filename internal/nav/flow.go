package nav

// State is a step of the week → category → value loop.
type State int

const (
	WeekSelect State = iota
	CategorySelect
	ValueInput
	Flash
	Done
)

func (s State) String() string {
	switch s {
	case WeekSelect:
		return "week-select"
	case CategorySelect:
		return "category-select"
	case ValueInput:
		return "value-input"
	case Flash:
		return "flash"
	case Done:
		return "done"
	}
	return "unknown"
}

type transition struct {
	from State
	kind Kind
}

// transitions drives every flow. A finished flash reports KindValue.
// KindExit is handled before the lookup and always ends the session.
var transitions = map[transition]State{
	{WeekSelect, KindValue}:     CategorySelect,
	{WeekSelect, KindBack}:      Done,
	{CategorySelect, KindValue}: ValueInput,
	{CategorySelect, KindBack}:  WeekSelect,
	{ValueInput, KindValue}:     Flash,
	{ValueInput, KindBack}:      CategorySelect,
	{Flash, KindValue}:          CategorySelect,
}

// Next returns the state that follows from after an outcome of kind k.
// ok is false for pairs the table does not define.
func Next(from State, k Kind) (next State, ok bool) {
	if k == KindExit {
		return Done, true
	}
	next, ok = transitions[transition{from, k}]
	return next, ok
}

// Flow supplies the items and the commit step for a session. Weeks and
// categories are addressed by their index in the most recent listing.
type Flow interface {
	// Weeks lists the selectable weeks and the index to start on.
	Weeks() (items []string, initial int)
	// Categories lists the categories for the chosen week.
	Categories(week int) []string
	// Value describes the input for a week and category. A non-nil current
	// value is offered as the default.
	Value(week, category int) (prompt string, current *float64)
	// Commit applies and persists amount. The returned message is flashed.
	// An error wrapping ErrRejected is shown on the input screen; any other
	// error ends the session.
	Commit(week, category int, amount float64) (message string, err error)
}
