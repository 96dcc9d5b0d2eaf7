package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/puff/input"
)

// bindings maps each game key to the keyboard keys that drive it.
var bindings = map[input.Key][]ebiten.Key{
	input.KeyLeft:     {ebiten.KeyA, ebiten.KeyArrowLeft},
	input.KeyRight:    {ebiten.KeyD, ebiten.KeyArrowRight},
	input.KeyUp:       {ebiten.KeyW, ebiten.KeyArrowUp},
	input.KeyDown:     {ebiten.KeyS, ebiten.KeyArrowDown},
	input.KeyJump:     {ebiten.KeySpace},
	input.KeyDash:     {ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyX},
	input.KeyInteract: {ebiten.KeyE},
	input.KeyAdvance:  {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	input.KeyEscape:   {ebiten.KeyEscape},
	input.KeyA:        {ebiten.KeyA},
	input.KeyR:        {ebiten.KeyR},
	input.KeyT:        {ebiten.KeyT},
	input.KeyH:        {ebiten.KeyH},
	input.KeyF:        {ebiten.KeyF},
	input.KeyS:        {ebiten.KeyS},
	input.KeyDigit0:   {ebiten.KeyDigit0, ebiten.KeyNumpad0},
	input.KeyDigit1:   {ebiten.KeyDigit1, ebiten.KeyNumpad1},
	input.KeyDigit2:   {ebiten.KeyDigit2, ebiten.KeyNumpad2},
	input.KeyDigit3:   {ebiten.KeyDigit3, ebiten.KeyNumpad3},
	input.KeyDigit4:   {ebiten.KeyDigit4, ebiten.KeyNumpad4},
	input.KeyDigit5:   {ebiten.KeyDigit5, ebiten.KeyNumpad5},
	input.KeyDigit6:   {ebiten.KeyDigit6, ebiten.KeyNumpad6},
	input.KeyDigit7:   {ebiten.KeyDigit7, ebiten.KeyNumpad7},
	input.KeyDigit8:   {ebiten.KeyDigit8, ebiten.KeyNumpad8},
	input.KeyDigit9:   {ebiten.KeyDigit9, ebiten.KeyNumpad9},
}

// sampleKeys reads the keyboard once for this frame. A left click also
// advances dialog and cutscenes.
func sampleKeys() input.Snapshot {
	var s input.Snapshot
	for k, keys := range bindings {
		for _, ek := range keys {
			s.Held[k] = s.Held[k] || ebiten.IsKeyPressed(ek)
			s.JustPressed[k] = s.JustPressed[k] || inpututil.IsKeyJustPressed(ek)
			s.JustReleased[k] = s.JustReleased[k] || inpututil.IsKeyJustReleased(ek)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.JustPressed[input.KeyAdvance] = true
	}
	// A key still held through another binding has not been released.
	for k := range s.JustReleased {
		if s.Held[k] {
			s.JustReleased[k] = false
		}
	}
	return s
}
