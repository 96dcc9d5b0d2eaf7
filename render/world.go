package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
)

var (
	backgroundColor = color.NRGBA{R: 0x16, G: 0x10, B: 0x1c, A: 0xff}
	// placeholderColor fills sprites whose image is missing.
	placeholderColor = color.NRGBA{R: 0x7a, G: 0x3b, B: 0x8f, A: 0xff}
)

// Renderer draws a frame of the world.
type Renderer struct {
	Images    *Images
	FadeColor color.Color

	dialog *DialogBox
}

func NewRenderer(images *Images, fade color.Color) *Renderer {
	if fade == nil {
		fade = color.Black
	}
	return &Renderer{Images: images, FadeColor: fade, dialog: NewDialogBox(images)}
}

type drawItem struct {
	e      ecs.Entity
	z      float64
	t      *component.Transform
	sprite *component.Sprite
}

// Draw renders sprites back to front by Z, then the fade overlay and the
// open conversation. A cutscene replaces the world.
func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if r.drawCutscene(w, screen) {
		return
	}

	view := CameraView(w)
	var items []drawItem
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Hidden {
			return
		}
		items = append(items, drawItem{e: e, z: t.Z, t: t, sprite: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].z != items[j].z {
			return items[i].z < items[j].z
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		r.drawSprite(w, screen, view, it)
	}

	r.drawFade(w, screen)
	r.dialog.Draw(w, screen)
}

func (r *Renderer) drawSprite(w *ecs.World, screen *ebiten.Image, view View, it drawItem) {
	s := it.sprite
	rect := common.Rect{X: it.t.X, Y: it.t.Y, W: s.Width, H: s.Height}
	if s.NineSlice {
		if !view.Visible(rect) {
			return
		}
		x, y := view.RectToScreen(rect)
		tile := r.Images.Tile(s.Path)
		if tile == nil {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(rect.W), float32(rect.H), placeholderColor, false)
			return
		}
		tile.Draw(screen, x, y, int(rect.W), int(rect.H))
		return
	}

	img := r.Images.Get(s.Path)
	if img == nil {
		if rect.W > 0 && rect.H > 0 && view.Visible(rect) {
			x, y := view.RectToScreen(rect)
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(rect.W), float32(rect.H), placeholderColor, false)
		}
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if rect.W <= 0 {
		rect.W = iw
	}
	if rect.H <= 0 {
		rect.H = ih
	}
	if !view.Visible(rect) {
		return
	}

	sx, sy := rect.W/iw, rect.H/ih
	if ch, ok := ecs.Get(w, it.e, component.CharacterComponent.Kind()); ok {
		if !ch.FacingRight {
			sx = -sx
		}
		if ch.IsUpsideDown {
			sy = -sy
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(sx, sy)
	cx, cy := view.ToScreen(rect.X, rect.Y)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (r *Renderer) drawFade(w *ecs.World, screen *ebiten.Image) {
	e, ok := ecs.First(w, component.FadeOverlayComponent.Kind())
	if !ok {
		return
	}
	fo, _ := ecs.Get(w, e, component.FadeOverlayComponent.Kind())
	if fo.Alpha <= 0 {
		return
	}
	cr, cg, cb, _ := r.FadeColor.RGBA()
	c := color.NRGBA{
		R: uint8(cr >> 8),
		G: uint8(cg >> 8),
		B: uint8(cb >> 8),
		A: uint8(common.Clamp(fo.Alpha, 0, 1) * 0xff),
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

// drawCutscene draws the current still scaled to fit the screen.
func (r *Renderer) drawCutscene(w *ecs.World, screen *ebiten.Image) bool {
	e, ok := ecs.First(w, component.CutscenePlayerComponent.Kind())
	if !ok {
		return false
	}
	player, _ := ecs.Get(w, e, component.CutscenePlayerComponent.Kind())
	img := r.Images.Get(player.Path())
	if img == nil {
		r.dialog.DrawText(screen, player.ID)
		return true
	}
	b, sb := img.Bounds(), screen.Bounds()
	scale := min(float64(sb.Dx())/float64(b.Dx()), float64(sb.Dy())/float64(b.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sb.Dx())-float64(b.Dx())*scale)/2, (float64(sb.Dy())-float64(b.Dy())*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
	return true
}
