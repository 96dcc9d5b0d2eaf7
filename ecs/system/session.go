package system

import (
	"log"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

// Session owns the run: it spawns the character and the first level when
// play starts and tears everything down on the way back to the main menu.
type Session struct {
	world       *ecs.World
	states      *state.Machines
	router      *InputRouterSystem
	levels      *entity.LevelInstantiator
	transitions *TransitionController

	puff       *prefabs.PuffSpec
	startLevel string
	abilities  component.Abilities

	pending  *levels.ScriptedTransition
	returnTo state.AppState
}

type SessionOptions struct {
	Puff       *prefabs.PuffSpec
	StartLevel string
	Abilities  component.Abilities
}

func NewSession(w *ecs.World, states *state.Machines, router *InputRouterSystem, li *entity.LevelInstantiator, tc *TransitionController, opts SessionOptions) *Session {
	s := &Session{
		world:       w,
		states:      states,
		router:      router,
		levels:      li,
		transitions: tc,
		puff:        opts.Puff,
		startLevel:  opts.StartLevel,
		abilities:   opts.Abilities,
		returnTo:    state.AppMainMenu,
	}
	states.App.OnEnter(state.AppInGame, s.enterGame)
	states.App.OnEnter(state.AppMainMenu, s.End)
	return s
}

// Queue makes the next entry into play go to t. With a live character it
// becomes an ordinary transition.
func (s *Session) Queue(t levels.ScriptedTransition) {
	s.pending = &t
}

func (s *Session) SetPuffSpec(spec *prefabs.PuffSpec) {
	if spec == nil {
		return
	}
	s.puff = spec
	if e, ok := entity.FindCharacter(s.world); ok {
		entity.ApplyPuffSpec(s.world, e, spec)
	}
}

// OpenAudioMenu shows the audio menu and remembers where to return.
func (s *Session) OpenAudioMenu() {
	cur := s.states.App.Get()
	if cur == state.AppAudioMenu {
		return
	}
	s.returnTo = cur
	s.states.App.Set(state.AppAudioMenu)
}

func (s *Session) CloseAudioMenu() {
	if !s.states.App.Is(state.AppAudioMenu) {
		return
	}
	s.states.App.Set(s.returnTo)
}

// Update handles the escape key.
func (s *Session) Update(w *ecs.World) {
	if !s.router.Snapshot().Pressed(input.KeyEscape) {
		return
	}
	switch s.states.App.Get() {
	case state.AppInGame:
		s.OpenAudioMenu()
	case state.AppAudioMenu:
		s.CloseAudioMenu()
	case state.AppCreditsMenu:
		s.states.App.Set(state.AppMainMenu)
	}
}

func (s *Session) enterGame() {
	if s.states.App.Get() != state.AppInGame {
		return
	}
	if _, ok := entity.FindCharacter(s.world); ok {
		if s.pending != nil {
			pos := s.pending.Position
			s.transitions.Request(s.pending.Level, &pos)
			s.pending = nil
		}
		return
	}

	level := s.startLevel
	var pos *common.Vec2
	if s.pending != nil {
		level = s.pending.Level
		p := s.pending.Position
		pos = &p
		s.pending = nil
	}
	if err := s.start(level, pos); err != nil {
		log.Printf("session: %v", err)
		s.states.App.Set(state.AppMainMenu)
	}
}

func (s *Session) start(level string, pos *common.Vec2) error {
	desc, err := s.levels.Registry.Lookup(level)
	if err != nil {
		return err
	}
	spawn := desc.Spawn
	if pos != nil {
		spawn = *pos
	}
	char, err := entity.NewCharacter(s.world, s.puff, spawn, s.abilities)
	if err != nil {
		return err
	}
	s.levels.Despawn(s.world)
	if _, err := s.levels.Instantiate(s.world, level, common.ProgressionNone, nil); err != nil {
		ecs.DestroyEntity(s.world, char)
		return err
	}
	if _, inst, ok := entity.CurrentLevel(s.world); ok {
		if mp := musicPlayer(s.world); mp != nil {
			mp.Desired = inst.BGM
			mp.Hold = false
		}
	}
	SnapCamera(s.world)
	log.Printf("session: started in %s at (%.0f, %.0f)", level, spawn.X, spawn.Y)
	return nil
}

// End destroys the character, the level and everything transient, and
// lets the music fade out.
func (s *Session) End() {
	w := s.world
	if e, ok := entity.FindCharacter(w); ok {
		ecs.DestroyEntity(w, e)
	}
	s.levels.Despawn(w)
	s.transitions.Cancel()
	removeOverlay(w)
	stopCutscene(w)
	if mp := musicPlayer(w); mp != nil {
		mp.Desired = ""
		mp.Hold = false
	}
	s.states.Interaction.Force(state.InteractionNotReady)
	s.states.Conversation.Force(state.ConversationFinished)
	s.pending = nil
}
