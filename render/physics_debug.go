package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/state"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every shape in space.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, view: CameraView(w)})
}

// DrawControllerDebug prints the character controller and state machine
// values in the top-left corner. destination is the level a running
// transition is headed to, or empty.
func DrawControllerDebug(w *ecs.World, states *state.Machines, destination string, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	msg := fmt.Sprintf("FPS: %.1f\nApp: %v  Transition: %v  Fade: %v  BGM: %v\nInteraction: %v  Conversation: %v",
		ebiten.ActualFPS(),
		states.App.Get(), states.Transition.Get(), states.Fade.Get(), states.BGM.Get(),
		states.Interaction.Get(), states.Conversation.Get())
	if _, inst, ok := entity.CurrentLevel(w); ok {
		msg += fmt.Sprintf("\nLevel: %s (%v)", inst.ID, inst.Progression)
	}
	if destination != "" {
		msg += fmt.Sprintf("  -> %s", destination)
	}

	e, ok := ecs.First(w, component.CharacterComponent.Kind())
	if ok {
		ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
		j, _ := ecs.Get(w, e, component.JumperComponent.Kind())
		m, _ := ecs.Get(w, e, component.MovableComponent.Kind())
		v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if ch != nil && j != nil && m != nil && v != nil && t != nil {
			msg += fmt.Sprintf("\nPos: (%.0f, %.0f)  Vel: (%.0f, %.0f)\nGround: %v  UpsideDown: %v\nJumping: %v  Available: %v  NextDouble: %v\nWall L/R: %v/%v  Stun: %v",
				t.X, t.Y, v.X, v.Y,
				ch.TouchingGround, ch.IsUpsideDown,
				j.IsJumping, j.JumpAvailable, j.IsNextJumpDoubleJump,
				m.HuggingLeftWall, m.HuggingRightWall, m.IsStunlocked)
		}
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   View
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	d.drawLine(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	d.drawCircle(a, radius, outline)
	d.drawCircle(b, radius, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.ToScreen(pos.X, pos.Y)
	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(size/2), toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tells sensors apart from solid terrain.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return cp.FColor{R: 0.9, G: 0.8, B: 0.1, A: 0.6}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.view.ToScreen(a.X, a.Y)
	x2, y2 := d.view.ToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := center.Add(cp.Vector{X: radius})
	for i := 1; i <= debugCircleSegments; i++ {
		next := center.Add(cp.ForAngle(2 * math.Pi * float64(i) / debugCircleSegments).Mult(radius))
		d.drawLine(prev, next, color)
		prev = next
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
