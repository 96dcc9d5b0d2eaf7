package system

import (
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const peekEaseSeconds = 0.25

// CameraSystem follows the character. Holding Up or Down for PeekHold
// seconds eases the view toward what lies above or below.
type CameraSystem struct {
	peek     *gween.Tween
	peekGoal float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())

	target, ok := characterPosition(w)
	if !ok {
		return
	}
	dt := w.Delta()

	peekDir := 0.0
	if charEnt, ok := ecs.First(w, component.CharacterComponent.Kind()); ok {
		if in, ok := ecs.Get(w, charEnt, component.InputComponent.Kind()); ok {
			switch {
			case in.Up.Held && !in.Down.Held:
				peekDir = 1
			case in.Down.Held && !in.Up.Held:
				peekDir = -1
			}
		}
	}
	if peekDir == 0 {
		cam.PeekTimer = 0
	} else {
		cam.PeekTimer += dt
	}

	want := 0.0
	if peekDir != 0 && cam.PeekTimer >= cam.PeekHold {
		want = peekDir * cam.PeekDistance
	}
	cam.PeekTarget = want
	if want != cs.peekGoal || cs.peek == nil {
		cs.peekGoal = want
		cs.peek = gween.New(float32(cam.PeekOffset), float32(want), peekEaseSeconds, ease.OutQuad)
	}
	offset, _ := cs.peek.Update(float32(dt))
	cam.PeekOffset = float64(offset)

	t := common.Clamp(cam.Smoothness, 0, 1)
	cam.X = common.Lerp(cam.X, target.X, t)
	cam.Y = common.Lerp(cam.Y, target.Y+cam.PeekOffset, t)
}

// SnapCamera centers the camera on the character and cancels any peek.
func SnapCamera(w *ecs.World) bool {
	camEnt, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return false
	}
	pos, ok := characterPosition(w)
	if !ok {
		return false
	}
	cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	cam.X = pos.X
	cam.Y = pos.Y
	cam.PeekTimer = 0
	cam.PeekOffset = 0
	cam.PeekTarget = 0
	return true
}

func characterPosition(w *ecs.World) (common.Vec2, bool) {
	e, ok := ecs.First(w, component.CharacterComponent.Kind())
	if !ok {
		return common.Vec2{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec2{}, false
	}
	return common.V(t.X, t.Y), true
}
