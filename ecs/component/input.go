package component

type Button struct {
	Held     bool
	Pressed  bool
	Released bool
}

// Input stores the routed intents for the character this frame.
// Horizontal is -1, 0 or 1 after the last-pressed tie-break.
type Input struct {
	Horizontal int
	Left       Button
	Right      Button
	Up         Button
	Down       Button
	Jump       Button
	Dash       Button
	Interact   Button
}

var InputComponent = NewComponent[Input]()
