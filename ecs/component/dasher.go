package component

type Dasher struct {
	DashImpulse   float64
	DashCooldown  float64
	TimeSinceDash float64
	MaxDash       float64
}

var DasherComponent = NewComponent[Dasher]()
