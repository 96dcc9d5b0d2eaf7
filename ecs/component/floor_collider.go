package component

type Side int

const (
	SideNone Side = iota
	SideFloor
	SideLeftWall
	SideRightWall
	SideCeiling
)

func (s Side) String() string {
	switch s {
	case SideFloor:
		return "floor"
	case SideLeftWall:
		return "left_wall"
	case SideRightWall:
		return "right_wall"
	case SideCeiling:
		return "ceiling"
	default:
		return "none"
	}
}

// FloorCollider tags static terrain. Touching is written by the contact
// classifier, never by the character.
type FloorCollider struct {
	Asset     string
	Touching  Side
	Character uint64
}

var FloorColliderComponent = NewComponent[FloorCollider]()
