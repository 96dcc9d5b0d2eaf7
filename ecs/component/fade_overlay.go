package component

import "github.com/tanema/gween"

// FadeOverlay is the full-screen rectangle drawn over the world while a
// transition runs. It exists from FadeIn until the fade returns to None.
type FadeOverlay struct {
	Alpha float64
	Tween *gween.Tween
}

var FadeOverlayComponent = NewComponent[FadeOverlay]()
