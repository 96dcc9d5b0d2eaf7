// Package app assembles the game: world, state machines, level registry
// and the two schedules. It has no engine dependency; main feeds it frame
// deltas and key snapshots, tests do the same.
package app

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/puff/assets"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/ecs/system"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

const (
	// FixedStep is the physics tick.
	FixedStep = 1.0 / 60
	// maxFrameDelta bounds how many ticks one slow frame can queue.
	maxFrameDelta = 0.25
)

type Options struct {
	// StartLevel skips the menus and starts there.
	StartLevel   string
	Debug        bool
	AllAbilities bool
	Muted        bool
	Override     bool
}

// Deps are the loaded data and the audio backend. Nil specs are loaded
// from the prefabs package; nil audio plays nothing.
type Deps struct {
	Registry  *levels.Registry
	Library   *assets.Library
	Puff      *prefabs.PuffSpec
	Camera    *prefabs.CameraSpec
	Fade      *prefabs.FadeSpec
	Cutscenes *prefabs.CutscenesSpec
	Cheats    *prefabs.CheatsSpec
	Music     system.BGMOpener
	SFX       system.SFXPlayer
}

type App struct {
	World    *ecs.World
	States   *state.Machines
	Audio    *component.AudioSettings
	Registry *levels.Registry
	Library  *assets.Library

	router      *system.InputRouterSystem
	physics     *system.PhysicsSystem
	fade        *system.FadeOverlaySystem
	cheats      *system.CheatSystem
	cutscenes   *system.CutsceneSystem
	transitions *system.TransitionController
	session     *system.Session

	update *ecs.Scheduler
	fixed  *ecs.Scheduler

	accumulator float64
	intro       string
}

func New(opts Options, deps Deps) (*App, error) {
	if err := deps.loadDefaults(); err != nil {
		return nil, err
	}
	for _, p := range deps.Registry.Problems() {
		log.Printf("levels: %s", p)
	}

	system.Debug = opts.Debug
	states := state.NewMachines(state.AppMainMenu)
	if opts.Debug {
		states.Trace(log.Printf)
	}

	settings := component.NewAudioSettings()
	settings.Muted = opts.Muted
	if deps.Library != nil {
		deps.Library.SetOverride(opts.Override)
	}

	w := ecs.NewWorld()
	if _, err := entity.NewCamera(w, deps.Camera); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if _, err := entity.NewMusicPlayer(w); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	startLevel := opts.StartLevel
	if startLevel == "" {
		startLevel = levels.DefaultLevel
	}
	if _, ok := deps.Registry.Get(startLevel); !ok {
		return nil, fmt.Errorf("app: start level %q: %w", startLevel, levels.ErrUnknownLevel)
	}
	var abilities component.Abilities
	if opts.AllAbilities {
		abilities = component.Abilities{DoubleJump: true, WallJump: true, Dash: true}
	}

	a := &App{
		World:    w,
		States:   states,
		Audio:    settings,
		Registry: deps.Registry,
		Library:  deps.Library,
		intro:    deps.Cutscenes.Intro,
	}

	contactEvents := ecs.NewEventQueue[component.ContactEvent]()
	contacts := ecs.NewEventQueue[component.Contact]()
	sounds := ecs.NewEventQueue[component.SoundEvent]()

	li := entity.NewLevelInstantiator(deps.Registry)
	a.router = system.NewInputRouterSystem(states)
	a.physics = system.NewPhysicsSystem(contactEvents)
	a.transitions = system.NewTransitionController(w, states, li)
	a.session = system.NewSession(w, states, a.router, li, a.transitions, system.SessionOptions{
		Puff:       deps.Puff,
		StartLevel: startLevel,
		Abilities:  abilities,
	})
	a.cutscenes = system.NewCutsceneSystem(states, a.router, deps.Cutscenes, a.session)
	a.cheats = system.NewCheatSystem(states, a.router, a.transitions, deps.Library, deps.Cheats)
	conversations := system.NewConversationSystem(states, a.router, a.transitions, a.cutscenes, sounds)

	fadeRate, bgmStep := 0.0, 0.0
	if deps.Fade != nil {
		fadeRate, bgmStep = deps.Fade.Rate, deps.Fade.BGMStep
	}
	a.fade = system.NewFadeOverlaySystem(states, fadeRate)

	gameplay := states.Gameplay
	a.update = ecs.NewScheduler(
		a.router,
		a.cheats,
		ecs.RunIf(gameplay, system.NewCharacterControllerSystem(sounds)),
		ecs.RunIf(gameplay, system.NewInteractionSystem(states, a.transitions, conversations, sounds)),
		ecs.RunIf(gameplay, conversations),
		a.cutscenes,
		ecs.RunIf(gameplay, system.NewCameraSystem()),
		a.session,
	)
	a.fixed = ecs.NewScheduler(
		ecs.RunIf(gameplay, a.physics),
		ecs.RunIf(gameplay, system.NewContactClassifierSystem(contactEvents, contacts)),
		ecs.RunIf(gameplay, system.NewCharacterContactSystem(contacts)),
		ecs.RunIf(gameplay, system.NewSensorSystem(contacts, states, a.transitions, sounds)),
		ecs.RunIf(gameplay, system.NewTimeTrialSystem()),
		ecs.RunIf(gameplay, a.fade),
		system.NewBGMCrossfader(states, deps.Music, settings, bgmStep),
		system.NewSoundSystem(sounds, deps.SFX, settings),
	)

	if opts.StartLevel != "" {
		states.App.Set(state.AppInGame)
	}
	return a, nil
}

func (d *Deps) loadDefaults() error {
	var err error
	if d.Registry == nil {
		if d.Registry, err = levels.Default(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if d.Puff == nil {
		if d.Puff, err = prefabs.LoadPuffSpec(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if d.Camera == nil {
		if d.Camera, err = prefabs.LoadCameraSpec(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if d.Fade == nil {
		if d.Fade, err = prefabs.LoadFadeSpec(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if d.Cutscenes == nil {
		if d.Cutscenes, err = prefabs.LoadCutscenesSpec(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if d.Cheats == nil {
		if d.Cheats, err = prefabs.LoadCheatsSpec(); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	return nil
}

// Step advances one rendered frame: the update schedule once with dt,
// then as many fixed ticks as the accumulated time allows. State changes
// queued by a schedule apply before the next one runs.
func (a *App) Step(dt float64, snap input.Snapshot) {
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	a.States.Apply()
	a.router.SetSnapshot(snap)
	a.update.Run(a.World, dt)

	a.accumulator += dt
	for a.accumulator >= FixedStep {
		a.States.Apply()
		a.fixed.Run(a.World, FixedStep)
		a.accumulator -= FixedStep
	}
}

// NewGame starts a run from the main menu, through the intro cutscene
// when there is one.
func (a *App) NewGame() {
	if a.intro != "" && a.cutscenes.Play(a.World, a.intro) {
		return
	}
	a.States.App.Set(state.AppInGame)
}

func (a *App) QuitToMenu() {
	a.States.App.Set(state.AppMainMenu)
}

func (a *App) ShowCredits() {
	a.States.App.Set(state.AppCreditsMenu)
}

func (a *App) OpenAudioMenu() {
	a.session.OpenAudioMenu()
}

func (a *App) CloseAudioMenu() {
	a.session.CloseAudioMenu()
}

// Space exposes the physics space for debug drawing.
// Destination names the level a running transition is headed to.
func (a *App) Destination() (string, bool) {
	return a.transitions.Destination()
}

func (a *App) Space() *cp.Space {
	return a.physics.Space()
}

// Reload re-reads one prefab file and pushes it into the live game.
func (a *App) Reload(name string) error {
	switch name {
	case "puff.yaml":
		spec, err := prefabs.LoadPuffSpec()
		if err != nil {
			return err
		}
		a.session.SetPuffSpec(spec)
	case "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		if e, ok := ecs.First(a.World, component.CameraComponent.Kind()); ok {
			cam, _ := ecs.Get(a.World, e, component.CameraComponent.Kind())
			cam.Smoothness = spec.Smoothness
			cam.PeekHold = spec.PeekHold
			cam.PeekDistance = spec.PeekDistance
		}
	case "fade.yaml":
		spec, err := prefabs.LoadFadeSpec()
		if err != nil {
			return err
		}
		a.fade.SetRate(spec.Rate)
	case "cutscenes.yaml":
		spec, err := prefabs.LoadCutscenesSpec()
		if err != nil {
			return err
		}
		a.cutscenes.SetSpec(spec)
		a.intro = spec.Intro
	case "cheats.yaml":
		spec, err := prefabs.LoadCheatsSpec()
		if err != nil {
			return err
		}
		a.cheats.SetSpec(spec)
	default:
		return nil
	}
	log.Printf("prefabs: reloaded %s", name)
	return nil
}
