package component

import "github.com/milk9111/puff/levels"

type NPC struct {
	Spec    levels.NPC
	Emotion string
}

var NPCComponent = NewComponent[NPC]()

// Conversation is the dialog in progress. It lives on the NPC it belongs to.
type Conversation struct {
	Lines []levels.Line
	Index int
}

func (c *Conversation) Current() (levels.Line, bool) {
	if c.Index < 0 || c.Index >= len(c.Lines) {
		return levels.Line{}, false
	}
	return c.Lines[c.Index], true
}

var ConversationComponent = NewComponent[Conversation]()

// InteractionTarget lists the interactables the character currently
// overlaps, most recent last.
type InteractionTarget struct {
	Entities []uint64
}

var InteractionTargetComponent = NewComponent[InteractionTarget]()
