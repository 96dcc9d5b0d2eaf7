package component

// GravityScale scales world gravity for a dynamic physics body.
// A negative scale pulls the body up.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
