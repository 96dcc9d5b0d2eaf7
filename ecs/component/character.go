package component

import "github.com/milk9111/puff/common"

// Character is the player-controlled Puff. There is at most one.
type Character struct {
	FacingRight    bool
	IsUpsideDown   bool
	TouchingGround bool
	Progression    common.Progression
	// BrokenWalls remembers walls broken this run, keyed "level#index".
	BrokenWalls map[string]bool
	// InverterContacts counts overlapping gravity inverter volumes.
	InverterContacts int
}

var CharacterComponent = NewComponent[Character]()
