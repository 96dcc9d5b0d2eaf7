package system

import (
	"log"

	"github.com/milk9111/puff/ecs"
	"github.com/milk9111/puff/ecs/component"
	"github.com/milk9111/puff/ecs/entity"
	"github.com/milk9111/puff/input"
	"github.com/milk9111/puff/levels"
	"github.com/milk9111/puff/state"
)

// ConversationSystem steps through an NPC's lines and runs its on-finish
// callbacks once the last line is dismissed.
type ConversationSystem struct {
	states      *state.Machines
	router      *InputRouterSystem
	transitions *TransitionController
	cutscenes   *CutsceneSystem
	sounds      *ecs.EventQueue[component.SoundEvent]
}

func NewConversationSystem(states *state.Machines, router *InputRouterSystem, transitions *TransitionController, cutscenes *CutsceneSystem, sounds *ecs.EventQueue[component.SoundEvent]) *ConversationSystem {
	return &ConversationSystem{states: states, router: router, transitions: transitions, cutscenes: cutscenes, sounds: sounds}
}

// Start opens the conversation of npc. The character stops where it is.
func (cs *ConversationSystem) Start(w *ecs.World, npc ecs.Entity) bool {
	n, ok := ecs.Get(w, npc, component.NPCComponent.Kind())
	if !ok || len(n.Spec.Lines) == 0 {
		return false
	}
	if cs.states.Conversation.Is(state.ConversationStarted) {
		return false
	}
	conv := &component.Conversation{Lines: append([]levels.Line(nil), n.Spec.Lines...)}
	if err := ecs.Add(w, npc, component.ConversationComponent.Kind(), conv); err != nil {
		log.Printf("conversation: %v", err)
		return false
	}
	cs.showLine(w, npc, conv)
	if e, ok := entity.FindCharacter(w); ok {
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v.X = 0
		}
	}
	cs.states.Conversation.Set(state.ConversationStarted)
	return true
}

func (cs *ConversationSystem) Update(w *ecs.World) {
	if cs == nil || w == nil || !cs.states.Conversation.Is(state.ConversationStarted) {
		return
	}
	npc, ok := ecs.First(w, component.ConversationComponent.Kind())
	if !ok {
		cs.states.Conversation.Set(state.ConversationFinished)
		return
	}
	s := cs.router.Snapshot()
	if !s.Pressed(input.KeyAdvance) && !s.Pressed(input.KeyJump) {
		return
	}
	conv, _ := ecs.Get(w, npc, component.ConversationComponent.Kind())
	conv.Index++
	if conv.Index < len(conv.Lines) {
		cs.showLine(w, npc, conv)
		cs.sounds.Push(component.SoundEvent{Name: "dialog"})
		return
	}

	ecs.Remove(w, npc, component.ConversationComponent.Kind())
	cs.states.Conversation.Set(state.ConversationFinished)
	n, ok := ecs.Get(w, npc, component.NPCComponent.Kind())
	if !ok {
		return
	}
	cs.finish(w, n.Spec.OnFinish)
}

// showLine updates the NPC portrait to the emotion of its own lines.
func (cs *ConversationSystem) showLine(w *ecs.World, npc ecs.Entity, conv *component.Conversation) {
	line, ok := conv.Current()
	if !ok {
		return
	}
	n, ok := ecs.Get(w, npc, component.NPCComponent.Kind())
	if !ok || line.Emotion == "" || (line.Speaker != "" && line.Speaker != n.Spec.Name) {
		return
	}
	n.Emotion = line.Emotion
	if sp, ok := ecs.Get(w, npc, component.SpriteComponent.Kind()); ok {
		sp.Path = component.NPCPath(n.Spec.Name, n.Emotion)
	}
}

func (cs *ConversationSystem) finish(w *ecs.World, cb levels.Callbacks) {
	charEnt, ok := entity.FindCharacter(w)
	if !ok {
		return
	}
	ch, _ := ecs.Get(w, charEnt, component.CharacterComponent.Kind())

	if cb.Progression != nil && *cb.Progression > ch.Progression {
		ch.Progression = *cb.Progression
		log.Printf("conversation: progression now %s", ch.Progression)
	}
	if ab, ok := ecs.Get(w, charEnt, component.AbilitiesComponent.Kind()); ok {
		for _, a := range cb.Grant {
			grantAbility(ab, a)
		}
	}
	if len(cb.BreakWalls) > 0 {
		BreakWalls(w, cb.BreakWalls...)
	}
	if cb.Transition != nil {
		pos := cb.Transition.Position
		cs.transitions.Request(cb.Transition.Level, &pos)
	}
	if cb.Cutscene != "" && cs.cutscenes != nil {
		cs.cutscenes.Play(w, cb.Cutscene)
	}
}

func grantAbility(ab *component.Abilities, a levels.Ability) {
	switch a {
	case levels.AbilityDoubleJump:
		ab.DoubleJump = true
	case levels.AbilityWallJump:
		ab.WallJump = true
	case levels.AbilityDash:
		ab.Dash = true
	}
}

// BreakWalls despawns the breakable walls of the current level with the
// given indices and remembers them for the rest of the run.
func BreakWalls(w *ecs.World, indices ...int) int {
	_, inst, ok := entity.CurrentLevel(w)
	if !ok {
		return 0
	}
	want := make(map[int]bool, len(indices))
	for _, i := range indices {
		want[i] = true
	}
	var ch *component.Character
	if e, ok := entity.FindCharacter(w); ok {
		ch, _ = ecs.Get(w, e, component.CharacterComponent.Kind())
	}

	broken := 0
	ecs.ForEach(w, component.BreakableWallComponent.Kind(), func(e ecs.Entity, bw *component.BreakableWall) {
		if !want[bw.Index] {
			return
		}
		ecs.DestroyEntity(w, e)
		broken++
	})
	if ch != nil {
		if ch.BrokenWalls == nil {
			ch.BrokenWalls = make(map[string]bool)
		}
		for i := range want {
			ch.BrokenWalls[entity.BrokenWallKey(inst.ID, i)] = true
		}
	}
	return broken
}
