package component

import "github.com/jakecoffman/cp"

type ColliderShape int

const (
	ColliderBox ColliderShape = iota
	ColliderCircle
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled by the physics system.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Kind       ColliderShape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
