package system

import (
	"log"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
)

// TimeTrialSystem counts down running time trials and removes their
// floors when time runs out.
type TimeTrialSystem struct{}

func NewTimeTrialSystem() *TimeTrialSystem {
	return &TimeTrialSystem{}
}

func (ts *TimeTrialSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach(w, component.TimeTrialComponent.Kind(), func(e ecs.Entity, trial *component.TimeTrial) {
		if !trial.Active {
			return
		}
		trial.Remaining -= dt
		if trial.Remaining > 0 {
			return
		}
		endTimeTrial(w, trial)
	})
}

// StartTimeTrial pulls lever. A running trial restarts its clock.
func StartTimeTrial(w *ecs.World, lever ecs.Entity) bool {
	trial, ok := ecs.Get(w, lever, component.TimeTrialComponent.Kind())
	if !ok {
		return false
	}
	trial.Remaining = trial.Seconds
	if trial.Active {
		return true
	}
	level := ""
	if m, ok := ecs.Get(w, lever, component.LevelMemberComponent.Kind()); ok {
		level = m.Level
	}
	for _, r := range trial.Floors {
		e, err := entity.SpawnFloor(w, level, r, trial.Asset)
		if err != nil {
			log.Printf("time trial: %v", err)
			continue
		}
		if err := ecs.Add(w, e, component.TemporaryFloorComponent.Kind(), &component.TemporaryFloor{Lever: uint64(lever)}); err != nil {
			log.Printf("time trial: add temporary floor: %v", err)
		}
		trial.Spawned = append(trial.Spawned, uint64(e))
	}
	trial.Active = true
	return true
}

func endTimeTrial(w *ecs.World, trial *component.TimeTrial) {
	for _, e := range trial.Spawned {
		ecs.DestroyEntity(w, ecs.Entity(e))
	}
	trial.Spawned = nil
	trial.Active = false
	trial.Remaining = 0
}
