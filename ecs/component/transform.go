package component

// Transform is a world position; Z orders drawing.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]()
