package focus

// State is either unfocused or focused on one asset id
type State struct {
	id      string
	focused bool
}

// Unfocused returns the state with no asset highlighted
func Unfocused() State { return State{} }

// Focused returns the state highlighting id. Any string, including "", is a valid id.
func Focused(id string) State { return State{id: id, focused: true} }

// ID returns the focused id; ok is false when unfocused
func (s State) ID() (id string, ok bool) { return s.id, s.focused }

// IsFocused reports whether an asset is highlighted
func (s State) IsFocused() bool { return s.focused }

func (s State) String() string {
	if !s.focused {
		return "unfocused"
	}
	return "focused(" + s.id + ")"
}
