package render

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	dialogMargin    = 40
	dialogHeight    = 150
	dialogPadding   = 20
	dialogPortrait  = 110
	dialogLineChars = 80
	dialogLineGap   = 18
)

var (
	dialogBackground = color.NRGBA{R: 0x0c, G: 0x08, B: 0x10, A: 0xe0}
	dialogBorder     = color.NRGBA{R: 0xe8, G: 0xd8, B: 0xf0, A: 0xff}
	dialogText       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dialogSpeaker    = color.NRGBA{R: 0xf0, G: 0xb0, B: 0xd8, A: 0xff}
)

// DialogBox draws the line of the open conversation along the bottom of
// the screen, with the speaking NPC's portrait.
type DialogBox struct {
	images *Images
	face   text.Face
}

func NewDialogBox(images *Images) *DialogBox {
	return &DialogBox{images: images, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (d *DialogBox) Draw(w *ecs.World, screen *ebiten.Image) {
	npc, ok := ecs.First(w, component.ConversationComponent.Kind())
	if !ok {
		return
	}
	conv, _ := ecs.Get(w, npc, component.ConversationComponent.Kind())
	line, ok := conv.Current()
	if !ok {
		return
	}

	b := screen.Bounds()
	x := float32(dialogMargin)
	y := float32(b.Dy() - dialogMargin - dialogHeight)
	width := float32(b.Dx() - 2*dialogMargin)
	vector.DrawFilledRect(screen, x, y, width, dialogHeight, dialogBackground, false)
	vector.StrokeRect(screen, x, y, width, dialogHeight, 2, dialogBorder, false)

	textX := float64(x) + dialogPadding
	if n, ok := ecs.Get(w, npc, component.NPCComponent.Kind()); ok {
		if img := d.images.Get(component.NPCPath(n.Spec.Name, n.Emotion)); img != nil {
			ib := img.Bounds()
			scale := dialogPortrait / float64(max(ib.Dx(), ib.Dy()))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(textX, float64(y)+dialogPadding)
			screen.DrawImage(img, op)
			textX += dialogPortrait + dialogPadding
		}
	}

	textY := float64(y) + dialogPadding
	if line.Speaker != "" {
		d.drawLine(screen, line.Speaker, textX, textY, dialogSpeaker)
		textY += dialogLineGap * 1.5
	}
	for _, l := range wrap(line.Text, dialogLineChars) {
		d.drawLine(screen, l, textX, textY, dialogText)
		textY += dialogLineGap
	}
}

// DrawText centers msg on an otherwise empty screen.
func (d *DialogBox) DrawText(screen *ebiten.Image, msg string) {
	b := screen.Bounds()
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(b.Dx())/2, float64(b.Dy())/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(dialogText)
	text.Draw(screen, msg, d.face, op)
}

func (d *DialogBox) drawLine(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, d.face, op)
}

// wrap breaks s into lines of at most width characters at spaces. Words
// longer than width get a line of their own.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
