package component

// Movable carries horizontal movement tuning, wall contact and stunlock.
// At most one of the hugging flags is set.
type Movable struct {
	Speed            float64
	MaxFall          float64
	MaxWallSlide     float64
	HuggingLeftWall  bool
	HuggingRightWall bool
	IsStunlocked     bool
	StunDuration     float64
	TimeSinceStun    float64
}

func (m *Movable) HuggingWall() bool {
	return m.HuggingLeftWall || m.HuggingRightWall
}

var MovableComponent = NewComponent[Movable]()
