package component

// Abilities are story-gated and survive level transitions.
type Abilities struct {
	DoubleJump bool
	WallJump   bool
	Dash       bool
}

var AbilitiesComponent = NewComponent[Abilities]()
