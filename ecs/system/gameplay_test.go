package system

import (
	"testing"

	"github.com/milk9111/puff/common"
	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/prefabs"
	"github.com/milk9111/puff/state"
)

type sessionRig struct {
	w         *ecs.World
	states    *state.Machines
	router    *InputRouterSystem
	li        *entity.LevelInstantiator
	tc        *TransitionController
	session   *Session
	cutscenes *CutsceneSystem
	tracker   input.Tracker
}

func newSessionRig(t *testing.T) *sessionRig {
	t.Helper()
	w := ecs.NewWorld()
	if _, err := entity.NewCamera(w, nil); err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if _, err := entity.NewMusicPlayer(w); err != nil {
		t.Fatalf("NewMusicPlayer: %v", err)
	}
	states := state.NewMachines(state.AppMainMenu)
	router := NewInputRouterSystem(states)
	li := entity.NewLevelInstantiator(testRegistry())
	tc := NewTransitionController(w, states, li)
	session := NewSession(w, states, router, li, tc, SessionOptions{Puff: testPuffSpec(), StartLevel: "room_1"})
	cutscenes := NewCutsceneSystem(states, router, &prefabs.CutscenesSpec{
		Intro: "intro",
		Cutscenes: map[string]prefabs.CutsceneSpec{
			"intro":  {Frames: 2, Level: "room_2", X: 5, Y: 6},
			"ending": {Frames: 1, Credits: true},
		},
	}, session)
	return &sessionRig{w: w, states: states, router: router, li: li, tc: tc, session: session, cutscenes: cutscenes}
}

// frame applies queued states, samples held keys and runs the given
// systems.
func (r *sessionRig) frame(systems []ecs.System, held ...input.Key) {
	r.states.Apply()
	r.router.SetSnapshot(r.tracker.Next(held...))
	r.w.SetDelta(frame)
	for _, s := range systems {
		s.Update(r.w)
	}
}

func (r *sessionRig) level() string {
	if _, inst, ok := entity.CurrentLevel(r.w); ok {
		return inst.ID
	}
	return ""
}

func TestSessionStartAndTeardown(t *testing.T) {
	r := newSessionRig(t)
	r.states.App.Set(state.AppInGame)
	r.states.Apply()

	char, ok := entity.FindCharacter(r.w)
	if !ok {
		t.Fatalf("no character after entering the game")
	}
	if r.level() != "room_1" {
		t.Fatalf("level = %q", r.level())
	}
	pos, _ := ecs.Get(r.w, char, component.TransformComponent.Kind())
	if pos.X != 100 || pos.Y != 40 {
		t.Fatalf("spawned at (%v, %v)", pos.X, pos.Y)
	}
	if mp := musicPlayer(r.w); mp.Desired != "track_1" {
		t.Fatalf("desired track = %q", mp.Desired)
	}

	r.states.App.Set(state.AppMainMenu)
	r.states.Apply()
	if _, ok := entity.FindCharacter(r.w); ok {
		t.Fatalf("character survived the main menu")
	}
	if r.level() != "" {
		t.Fatalf("level %q survived the main menu", r.level())
	}
	if mp := musicPlayer(r.w); mp.Desired != "" {
		t.Fatalf("music still wanted: %q", mp.Desired)
	}
}

func TestIntroCutsceneHandsOverToLevel(t *testing.T) {
	r := newSessionRig(t)
	systems := []ecs.System{r.router, r.cutscenes, r.session}

	if !r.cutscenes.Play(r.w, "intro") {
		t.Fatalf("Play failed")
	}
	r.frame(systems)
	if !r.states.App.Is(state.AppCutscene) {
		t.Fatalf("app = %v", r.states.App.Get())
	}
	r.frame(systems, input.KeyAdvance)
	r.frame(systems)
	player, _ := ecs.Get(r.w, mustFirst(t, r.w, component.CutscenePlayerComponent.Kind()), component.CutscenePlayerComponent.Kind())
	if player.Frame != 1 || player.Path() == "" {
		t.Fatalf("frame = %d", player.Frame)
	}
	r.frame(systems, input.KeyAdvance)
	r.frame(systems)

	if !r.states.App.Is(state.AppInGame) {
		t.Fatalf("app = %v, want in game", r.states.App.Get())
	}
	if r.level() != "room_2" {
		t.Fatalf("level = %q, want room_2", r.level())
	}
	char, _ := entity.FindCharacter(r.w)
	pos, _ := ecs.Get(r.w, char, component.TransformComponent.Kind())
	if pos.X != 5 || pos.Y != 6 {
		t.Fatalf("character at (%v, %v), want (5, 6)", pos.X, pos.Y)
	}
	if _, ok := ecs.First(r.w, component.CutscenePlayerComponent.Kind()); ok {
		t.Fatalf("cutscene player survived")
	}
}

func TestCreditsCutsceneEndsRun(t *testing.T) {
	r := newSessionRig(t)
	systems := []ecs.System{r.router, r.cutscenes, r.session}
	r.states.App.Set(state.AppInGame)
	r.frame(systems)

	r.cutscenes.Play(r.w, "ending")
	r.frame(systems)
	r.frame(systems, input.KeyJump)
	r.frame(systems)
	if !r.states.App.Is(state.AppCreditsMenu) {
		t.Fatalf("app = %v, want credits", r.states.App.Get())
	}
	if _, ok := entity.FindCharacter(r.w); ok {
		t.Fatalf("character survived the ending")
	}

	r.frame(systems, input.KeyEscape)
	r.frame(systems)
	if !r.states.App.Is(state.AppMainMenu) {
		t.Fatalf("app = %v, want main menu", r.states.App.Get())
	}
}

func TestEscapeTogglesAudioMenu(t *testing.T) {
	r := newSessionRig(t)
	systems := []ecs.System{r.router, r.session}
	r.states.App.Set(state.AppInGame)
	r.frame(systems)

	r.frame(systems, input.KeyEscape)
	r.frame(systems)
	if !r.states.App.Is(state.AppAudioMenu) {
		t.Fatalf("app = %v, want audio menu", r.states.App.Get())
	}
	if _, ok := entity.FindCharacter(r.w); !ok {
		t.Fatalf("audio menu destroyed the character")
	}
	r.frame(systems, input.KeyEscape)
	r.frame(systems)
	if !r.states.App.Is(state.AppInGame) {
		t.Fatalf("app = %v, want back in game", r.states.App.Get())
	}
}

func TestConversationRunsCallbacks(t *testing.T) {
	r := newSessionRig(t)
	sounds := ecs.NewEventQueue[component.SoundEvent]()
	conv := NewConversationSystem(r.states, r.router, r.tc, r.cutscenes, sounds)
	systems := []ecs.System{r.router, conv}

	r.states.App.Set(state.AppInGame)
	r.frame(systems)
	char, _ := entity.FindCharacter(r.w)

	met := common.ProgressionMetMilk
	npc := ecs.CreateEntity(r.w)
	if err := ecs.Add(r.w, npc, component.NPCComponent.Kind(), &component.NPC{Spec: levels.NPC{
		Name: "milk",
		Lines: []levels.Line{
			{Speaker: "milk", Emotion: "sleepy", Text: "mm"},
			{Speaker: "milk", Emotion: "happy", Text: "jump twice"},
		},
		OnFinish: levels.Callbacks{
			Progression: &met,
			Grant:       []levels.Ability{levels.AbilityDoubleJump},
			Transition:  &levels.ScriptedTransition{Level: "room_2", Position: common.V(3, 4)},
		},
	}}); err != nil {
		t.Fatalf("add npc: %v", err)
	}

	if !conv.Start(r.w, npc) {
		t.Fatalf("Start failed")
	}
	r.frame(systems)
	if !r.states.Conversation.Is(state.ConversationStarted) {
		t.Fatalf("conversation = %v", r.states.Conversation.Get())
	}
	n, _ := ecs.Get(r.w, npc, component.NPCComponent.Kind())
	if n.Emotion != "sleepy" {
		t.Fatalf("emotion = %q", n.Emotion)
	}

	r.frame(systems, input.KeyAdvance)
	if n.Emotion != "happy" {
		t.Fatalf("emotion = %q after advancing", n.Emotion)
	}
	r.frame(systems)
	r.frame(systems, input.KeyAdvance)
	r.frame(systems)

	if !r.states.Conversation.Is(state.ConversationFinished) {
		t.Fatalf("conversation = %v", r.states.Conversation.Get())
	}
	ch, _ := ecs.Get(r.w, char, component.CharacterComponent.Kind())
	if ch.Progression != common.ProgressionMetMilk {
		t.Fatalf("progression = %v", ch.Progression)
	}
	ab, _ := ecs.Get(r.w, char, component.AbilitiesComponent.Kind())
	if !ab.DoubleJump {
		t.Fatalf("double jump not granted")
	}
	if dest, ok := r.tc.Destination(); !ok || dest != "room_2" {
		t.Fatalf("transition destination = %q, %v", dest, ok)
	}
}

func TestInteractionOpensDoor(t *testing.T) {
	r := newSessionRig(t)
	r.states.App.Set(state.AppInGame)
	r.states.Apply()
	char, _ := entity.FindCharacter(r.w)

	door := ecs.CreateEntity(r.w)
	if err := ecs.Add(r.w, door, component.DoorComponent.Kind(), &component.Door{DestinationLevel: "room_2", SafePosition: common.V(9, 9)}); err != nil {
		t.Fatalf("add door: %v", err)
	}
	target, _ := ecs.Get(r.w, char, component.InteractionTargetComponent.Kind())
	target.Entities = []uint64{uint64(door)}
	r.states.Interaction.Set(state.InteractionReady)

	is := NewInteractionSystem(r.states, r.tc, nil, ecs.NewEventQueue[component.SoundEvent]())
	r.frame([]ecs.System{r.router, is}, input.KeyInteract)
	if dest, ok := r.tc.Destination(); !ok || dest != "room_2" {
		t.Fatalf("door did not start a transition")
	}
}

func TestTimeTrialSpawnsAndExpires(t *testing.T) {
	w := ecs.NewWorld()
	lever := ecs.CreateEntity(w)
	if err := ecs.Add(w, lever, component.TimeTrialComponent.Kind(), &component.TimeTrial{
		Seconds: 1,
		Floors:  []common.Rect{{X: 0, Y: 0, W: 100, H: 20}, {X: 200, Y: 0, W: 100, H: 20}},
	}); err != nil {
		t.Fatalf("add trial: %v", err)
	}
	if err := ecs.Add(w, lever, component.LevelMemberComponent.Kind(), &component.LevelMember{Level: "room_1"}); err != nil {
		t.Fatalf("add member: %v", err)
	}

	if !StartTimeTrial(w, lever) {
		t.Fatalf("StartTimeTrial failed")
	}
	if n := ecs.Count(w, component.TemporaryFloorComponent.Kind()); n != 2 {
		t.Fatalf("temporary floors = %d, want 2", n)
	}
	// Pulling again restarts the clock without more floors.
	StartTimeTrial(w, lever)
	if n := ecs.Count(w, component.TemporaryFloorComponent.Kind()); n != 2 {
		t.Fatalf("temporary floors = %d after restart", n)
	}

	ts := NewTimeTrialSystem()
	w.SetDelta(0.6)
	ts.Update(w)
	if n := ecs.Count(w, component.TemporaryFloorComponent.Kind()); n != 2 {
		t.Fatalf("floors gone early")
	}
	ts.Update(w)
	if n := ecs.Count(w, component.TemporaryFloorComponent.Kind()); n != 0 {
		t.Fatalf("temporary floors = %d after expiry", n)
	}
	trial, _ := ecs.Get(w, lever, component.TimeTrialComponent.Kind())
	if trial.Active {
		t.Fatalf("trial still active")
	}
}

func TestCheatJumpsToLevel(t *testing.T) {
	r := newSessionRig(t)
	cheats := NewCheatSystem(r.states, r.router, r.tc, nil, &prefabs.CheatsSpec{
		Levels: map[string]prefabs.CheatSpec{
			"s": {Prefix: "room", Abilities: []string{"dash", "wall_jump"}, Progression: "has_cherish"},
		},
	})
	systems := []ecs.System{r.router, cheats}
	r.states.App.Set(state.AppInGame)
	r.frame(systems)

	r.frame(systems, input.KeyS)
	r.frame(systems, input.KeyS, input.KeyDigit2)

	if dest, ok := r.tc.Destination(); !ok || dest != "room_2" {
		t.Fatalf("cheat destination = %q, %v", dest, ok)
	}
	char, _ := entity.FindCharacter(r.w)
	ab, _ := ecs.Get(r.w, char, component.AbilitiesComponent.Kind())
	if !ab.Dash || !ab.WallJump || ab.DoubleJump {
		t.Fatalf("abilities = %+v", *ab)
	}
	ch, _ := ecs.Get(r.w, char, component.CharacterComponent.Kind())
	if ch.Progression != common.ProgressionHasCherish {
		t.Fatalf("progression = %v", ch.Progression)
	}
}
