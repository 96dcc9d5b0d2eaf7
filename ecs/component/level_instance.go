package component

import "github.com/milk9111/puff/common"

// LevelInstance owns the entities spawned for one room.
type LevelInstance struct {
	ID          string
	Progression common.Progression
	BGM         string
	Floors      []uint64
	Sensors     []uint64
	Doors       []uint64
	NPCs        []uint64
	Modifiers   []uint64
	Decorations []uint64
}

var LevelInstanceComponent = NewComponent[LevelInstance]()
