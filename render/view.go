// Package render draws the world, the fade overlay and the dialog box
// with ebiten. World space is y-up; the screen is y-down.
package render

import (
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// View maps world coordinates onto the screen around the camera center.
type View struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// CameraView returns the view of the world's camera, or one centered on
// the origin without a camera.
func CameraView(w *ecs.World) View {
	v := View{Width: ScreenWidth, Height: ScreenHeight}
	if e, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
		v.CenterX, v.CenterY = cam.X, cam.Y
	}
	return v
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	return x - v.CenterX + v.Width/2, v.Height/2 - (y - v.CenterY)
}

// RectToScreen returns the top-left screen corner of a world rectangle
// given by its center and size.
func (v View) RectToScreen(r common.Rect) (float64, float64) {
	sx, sy := v.ToScreen(r.X, r.Y)
	return sx - r.W/2, sy - r.H/2
}

// Visible reports whether any part of r is on screen.
func (v View) Visible(r common.Rect) bool {
	x, y := v.RectToScreen(r)
	return x+r.W >= 0 && y+r.H >= 0 && x <= v.Width && y <= v.Height
}
