package component

// Jumper holds the jump chain. JumpImpulse is signed and flips with gravity.
type Jumper struct {
	JumpImpulse          float64
	IsJumping            bool
	JumpAvailable        bool
	IsNextJumpDoubleJump bool
	CoyoteBufferSeconds  float64
	// LeftGround is set while the coyote window after leaving a floor runs.
	LeftGround          bool
	TimeSinceLeftGround float64
}

var JumperComponent = NewComponent[Jumper]()
