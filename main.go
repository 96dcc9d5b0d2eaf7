package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/puff/app"
	"github.com/milk9111/puff/assets"
	"github.com/milk9111/puff/audio"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/render"
)

func main() {
	allAbilities := flag.Bool("ab", false, "start with all abilities unlocked")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	mute := flag.Bool("mute", false, "start with audio muted")
	override := flag.Bool("ov", false, "start with the programmer art override on")
	assetDir := flag.String("assets", "assets", "directory holding the game's art and audio")
	levelName := flag.String("level", "", "level id to start in, skipping the menus")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	library := assets.Open(*assetDir)
	backend := audio.NewBackend(library)

	fade, err := prefabs.LoadFadeSpec()
	if err != nil {
		log.Fatal(err)
	}
	a, err := app.New(app.Options{
		StartLevel:   *levelName,
		Debug:        *debug,
		AllAbilities: *allAbilities,
		Muted:        *mute,
		Override:     *override,
	}, app.Deps{
		Library: library,
		Fade:    fade,
		Music:   backend,
		SFX:     backend,
	})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		if watcher, err = prefabs.NewWatcher(prefabs.Dir); err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	var fadeColor color.Color
	if fade.Color != nil {
		fadeColor = fade.Color.Color
	}
	renderer := render.NewRenderer(render.NewImages(library), fadeColor)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(render.ScreenWidth, render.ScreenHeight)
	ebiten.SetWindowTitle("puff")

	game := NewGame(a, renderer, backend, watcher, *debug)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
