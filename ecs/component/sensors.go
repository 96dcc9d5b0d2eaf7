package component

import "github.com/milk9111/puff/common"

// TransitionSensor moves the character to another level on contact.
type TransitionSensor struct {
	Index            int
	DestinationLevel string
	SafePosition     *common.Vec2
}

var TransitionSensorComponent = NewComponent[TransitionSensor]()

// Door is a transition activated by the interact key.
type Door struct {
	Index            int
	DestinationLevel string
	SafePosition     common.Vec2
}

var DoorComponent = NewComponent[Door]()

type JumpPad struct{}

var JumpPadComponent = NewComponent[JumpPad]()

type GravityInverter struct{}

var GravityInverterComponent = NewComponent[GravityInverter]()

// BreakableWall is terrain despawned by callbacks.
type BreakableWall struct {
	Index int
}

var BreakableWallComponent = NewComponent[BreakableWall]()
