package component

type Camera struct {
	X          float64
	Y          float64
	Smoothness float64
	// PeekHold is how long Up or Down must be held before peeking.
	PeekHold     float64
	PeekDistance float64
	PeekTimer    float64
	PeekOffset   float64
	PeekTarget   float64
}

var CameraComponent = NewComponent[Camera]()
