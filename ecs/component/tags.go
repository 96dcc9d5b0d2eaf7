package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// LevelMember marks an entity as owned by the level instance with that id.
type LevelMember struct {
	Level string
}

var LevelMemberComponent = NewComponent[LevelMember]()
