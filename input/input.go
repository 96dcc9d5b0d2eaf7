// Package input holds the fixed key bindings as engine-free values so the
// simulation can be driven from tests as well as from the keyboard.
package input

type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyJump
	KeyDash
	KeyInteract
	KeyAdvance
	KeyEscape
	KeyA
	KeyR
	KeyT
	KeyH
	KeyF
	KeyS
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeyCount
)

// Snapshot is the keyboard state sampled once at the start of a frame.
type Snapshot struct {
	Held         [KeyCount]bool
	JustPressed  [KeyCount]bool
	JustReleased [KeyCount]bool
}

func (s Snapshot) Down(k Key) bool {
	return s.Held[k]
}

func (s Snapshot) Pressed(k Key) bool {
	return s.JustPressed[k]
}

func (s Snapshot) Released(k Key) bool {
	return s.JustReleased[k]
}

// Digit returns the digit whose key was pressed this frame.
func (s Snapshot) Digit() (int, bool) {
	for d := 0; d <= 9; d++ {
		if s.JustPressed[KeyDigit0+Key(d)] {
			return d, true
		}
	}
	return 0, false
}

// Tracker turns a stream of held-key sets into snapshots with edges. It is
// what tests use to script input frame by frame.
type Tracker struct {
	prev [KeyCount]bool
}

func (t *Tracker) Next(held ...Key) Snapshot {
	var s Snapshot
	for _, k := range held {
		s.Held[k] = true
	}
	for k := Key(0); k < KeyCount; k++ {
		s.JustPressed[k] = s.Held[k] && !t.prev[k]
		s.JustReleased[k] = !s.Held[k] && t.prev[k]
	}
	t.prev = s.Held
	return s
}
