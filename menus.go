package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/puff/app"
	"github.com/milk9111/puff/render"
	"golang.org/x/image/font/basicfont"
)

var (
	menuTextColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuPanel     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	menuButton    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	menuHover     = color.NRGBA{R: 0x55, G: 0x44, B: 0x66, A: 255}
)

// menuKit holds what every menu panel shares.
type menuKit struct {
	face        ebtext.Face
	panel       *imageui.NineSlice
	buttonImage *widget.ButtonImage
	textColor   *widget.ButtonTextColor
}

func newMenuKit() *menuKit {
	btn := imageui.NewNineSliceColor(menuButton)
	return &menuKit{
		face:        ebtext.NewGoXFace(basicfont.Face7x13),
		panel:       imageui.NewNineSliceColor(menuPanel),
		buttonImage: &widget.ButtonImage{Idle: btn, Hover: imageui.NewNineSliceColor(menuHover), Pressed: btn},
		textColor:   &widget.ButtonTextColor{Idle: menuTextColor},
	}
}

func (k *menuKit) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &k.face, menuTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (k *menuKit) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(k.buttonImage),
		widget.ButtonOpts.Text(label, &k.face, k.textColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// screen centers a vertical panel holding children.
func (k *menuKit) screen(children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(k.panel),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(render.ScreenWidth/3, render.ScreenHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewMainMenu builds the title screen.
func NewMainMenu(g *Game) *ebitenui.UI {
	k := newMenuKit()
	return k.screen(
		k.text("Puff"),
		k.button("New Game", g.app.NewGame),
		k.button("Audio", g.app.OpenAudioMenu),
		k.button("Credits", g.app.ShowCredits),
		k.button("Quit", func() { g.quit = true }),
	)
}

// audioMenu edits the volume settings. Its labels follow the settings.
type audioMenu struct {
	ui  *ebitenui.UI
	bgm *widget.Text
	sfx *widget.Text
	mut *widget.Text
	a   *app.App
}

func NewAudioMenu(g *Game) *audioMenu {
	k := newMenuKit()
	m := &audioMenu{a: g.app, bgm: k.text(""), sfx: k.text(""), mut: k.text("")}
	settings := g.app.Audio
	m.ui = k.screen(
		k.text("Audio"),
		m.bgm,
		k.button("Music -", func() { settings.StepBGM(-1) }),
		k.button("Music +", func() { settings.StepBGM(1) }),
		m.sfx,
		k.button("Effects -", func() { settings.StepSFX(-1) }),
		k.button("Effects +", func() { settings.StepSFX(1) }),
		m.mut,
		k.button("Mute", func() { settings.Muted = !settings.Muted }),
		k.button("Back", g.app.CloseAudioMenu),
	)
	m.refresh()
	return m
}

func (m *audioMenu) refresh() {
	s := m.a.Audio
	m.bgm.Label = fmt.Sprintf("Music: %.0f%%", s.BGMVolume*100)
	m.sfx.Label = fmt.Sprintf("Effects: %.0f%%", s.SFXVolume*100)
	m.mut.Label = fmt.Sprintf("Muted: %v", s.Muted)
}

func NewCreditsMenu(g *Game) *ebitenui.UI {
	k := newMenuKit()
	return k.screen(
		k.text("Puff"),
		k.text("A game by milk9111"),
		k.text("Thanks for playing."),
		k.button("Back", g.app.QuitToMenu),
	)
}
