package component

import "github.com/milk9111/puff/common"

// TimeTrial sits on the lever. Pulling it spawns Floors for Seconds.
type TimeTrial struct {
	Seconds   float64
	Floors    []common.Rect
	Asset     string
	Remaining float64
	Active    bool
	Spawned   []uint64
}

var TimeTrialComponent = NewComponent[TimeTrial]()

// TemporaryFloor marks floors owned by a running time trial.
type TemporaryFloor struct {
	Lever uint64
}

var TemporaryFloorComponent = NewComponent[TemporaryFloor]()
