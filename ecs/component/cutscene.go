package component

// CutscenePlayer is the still currently shown while AppState is Cutscene.
type CutscenePlayer struct {
	ID     string
	Frame  int
	Frames int
}

func (c *CutscenePlayer) Path() string {
	return cutscenePath(c.ID, c.Frame)
}

var CutscenePlayerComponent = NewComponent[CutscenePlayer]()
