package component

import "github.com/milk9111/puff/common"

type ContactPhase int

const (
	ContactStarted ContactPhase = iota
	ContactStopped
	// ContactRemoved reports that the other entity was despawned while
	// still in contact.
	ContactRemoved
)

func (p ContactPhase) String() string {
	switch p {
	case ContactStarted:
		return "started"
	case ContactStopped:
		return "stopped"
	default:
		return "removed"
	}
}

func (p ContactPhase) Ended() bool {
	return p != ContactStarted
}

// ContactEvent is emitted by the physics system for the character.
type ContactEvent struct {
	Phase        ContactPhase
	Character    uint64
	Other        uint64
	CharacterPos common.Vec2
}

// ContactKind is a bitmask of what the other entity was when the contact
// started.
type ContactKind uint16

const (
	KindTerrain ContactKind = 1 << iota
	KindTransitionSensor
	KindDoor
	KindJumpPad
	KindGravityInverter
	KindNPC
	KindLever
)

func (k ContactKind) Has(o ContactKind) bool {
	return k&o != 0
}

// Contact is a classified contact. Side is the side assigned when the
// contact started, also on Stopped and Removed.
type Contact struct {
	ContactEvent
	Kind ContactKind
	Side Side
}
