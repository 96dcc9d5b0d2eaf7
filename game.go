package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/puff/app"
	"github.com/milk9111/puff/assets"
	"github.com/milk9111/puff/audio"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/render"
	"github.com/milk9111/puff/state"
)

type Game struct {
	app      *app.App
	renderer *render.Renderer
	audio    *audio.Backend
	library  *assets.Library
	watcher  *prefabs.Watcher
	debug    bool
	quit     bool

	mainMenu    *ebitenui.UI
	audioMenu   *audioMenu
	creditsMenu *ebitenui.UI

	generation int
}

func NewGame(a *app.App, renderer *render.Renderer, backend *audio.Backend, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		app:      a,
		renderer: renderer,
		audio:    backend,
		library:  a.Library,
		watcher:  watcher,
		debug:    debug,
	}
	g.mainMenu = NewMainMenu(g)
	g.audioMenu = NewAudioMenu(g)
	g.creditsMenu = NewCreditsMenu(g)
	if g.library != nil {
		g.generation = g.library.Generation()
	}
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reload()

	g.app.Step(1/float64(ebiten.TPS()), sampleKeys())

	if ui := g.menu(); ui != nil {
		ui.Update()
	}
	g.audioMenu.refresh()

	if g.library != nil && g.library.Generation() != g.generation {
		g.generation = g.library.Generation()
		if g.audio != nil {
			g.audio.Purge()
		}
	}
	return nil
}

// reload applies prefab files edited on disk.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		if err := g.app.Reload(name); err != nil {
			log.Printf("prefabs: reload %s: %v", name, err)
		}
	}
}

func (g *Game) menu() *ebitenui.UI {
	switch g.app.States.App.Get() {
	case state.AppMainMenu:
		return g.mainMenu
	case state.AppAudioMenu:
		return g.audioMenu.ui
	case state.AppCreditsMenu:
		return g.creditsMenu
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.app.World, screen)
	if ui := g.menu(); ui != nil {
		ui.Draw(screen)
	}
	if g.debug {
		render.DrawPhysicsDebug(g.app.Space(), g.app.World, screen)
		dest, _ := g.app.Destination()
		render.DrawControllerDebug(g.app.World, g.app.States, dest, screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return render.ScreenWidth, render.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
