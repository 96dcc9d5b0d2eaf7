package levels

import "github.com/milk9111/puff/common"

// Floor is a static terrain rectangle drawn with tiles/<Asset>.png.
type Floor struct {
	common.Rect `yaml:",inline"`
	Asset       string      `yaml:"asset"`
	When        common.Gate `yaml:"when"`
}

// Sensor moves the character to level To on contact. Safe is where a
// character arriving through this sensor is placed.
type Sensor struct {
	common.Rect `yaml:",inline"`
	Index       int          `yaml:"index"`
	To          string       `yaml:"to"`
	Safe        *common.Vec2 `yaml:"safe"`
	When        common.Gate  `yaml:"when"`
}

// Door is a sensor that needs the interact key and carries its own
// arrival position.
type Door struct {
	common.Rect `yaml:",inline"`
	Index       int         `yaml:"index"`
	To          string      `yaml:"to"`
	Safe        common.Vec2 `yaml:"safe"`
	Asset       string      `yaml:"asset"`
	When        common.Gate `yaml:"when"`
}

type Line struct {
	Speaker string `yaml:"speaker"`
	Emotion string `yaml:"emotion"`
	Text    string `yaml:"text"`
}

// ScriptedTransition moves the character to Position in Level.
type ScriptedTransition struct {
	Level    string      `yaml:"level"`
	Position common.Vec2 `yaml:"position"`
}

// Callbacks run when a conversation ends.
type Callbacks struct {
	Progression *common.Progression `yaml:"progression"`
	Grant       []Ability           `yaml:"grant"`
	BreakWalls  []int               `yaml:"break_walls"`
	Cutscene    string              `yaml:"cutscene"`
	Transition  *ScriptedTransition `yaml:"transition"`
}

type NPC struct {
	common.Rect `yaml:",inline"`
	Name        string      `yaml:"name"`
	Emotion     string      `yaml:"emotion"`
	Lines       []Line      `yaml:"lines"`
	OnFinish    Callbacks   `yaml:"on_finish"`
	When        common.Gate `yaml:"when"`
}

type ModifierKind string

const (
	ModifierJumpPad         ModifierKind = "jump_pad"
	ModifierGravityInverter ModifierKind = "gravity_inverter"
	ModifierBreakableWall   ModifierKind = "breakable_wall"
	ModifierTimeTrial       ModifierKind = "time_trial"
)

// Modifier is a floor modification. The rectangle is the volume, the wall
// or the lever depending on Kind.
type Modifier struct {
	common.Rect `yaml:",inline"`
	Kind        ModifierKind  `yaml:"kind"`
	Index       int           `yaml:"index"`
	Asset       string        `yaml:"asset"`
	Seconds     float64       `yaml:"seconds"`
	Floors      []common.Rect `yaml:"floors"`
	When        common.Gate   `yaml:"when"`
}

type Decoration struct {
	common.Vec3 `yaml:",inline"`
	Asset       string      `yaml:"asset"`
	When        common.Gate `yaml:"when"`
}

type BGMVariant struct {
	Track string      `yaml:"track"`
	When  common.Gate `yaml:"when"`
}

// Descriptor is one authored room. Every element may be gated on the
// story progression.
type Descriptor struct {
	ID          string       `yaml:"id"`
	BGM         string       `yaml:"bgm"`
	BGMVariants []BGMVariant `yaml:"bgm_variants"`
	Spawn       common.Vec2  `yaml:"spawn"`
	Floors      []Floor      `yaml:"floors"`
	Sensors     []Sensor     `yaml:"sensors"`
	Doors       []Door       `yaml:"doors"`
	NPCs        []NPC        `yaml:"npcs"`
	Modifiers   []Modifier   `yaml:"modifiers"`
	Decorations []Decoration `yaml:"decorations"`
}

// Layout is a descriptor resolved against one progression value.
type Layout struct {
	ID          string
	BGM         string
	Spawn       common.Vec2
	Floors      []Floor
	Sensors     []Sensor
	Doors       []Door
	NPCs        []NPC
	Modifiers   []Modifier
	Decorations []Decoration
}

func (d *Descriptor) Layout(p common.Progression) Layout {
	return Layout{
		ID:          d.ID,
		BGM:         d.Track(p),
		Spawn:       d.Spawn,
		Floors:      gated(d.Floors, p, func(f Floor) common.Gate { return f.When }),
		Sensors:     gated(d.Sensors, p, func(s Sensor) common.Gate { return s.When }),
		Doors:       gated(d.Doors, p, func(s Door) common.Gate { return s.When }),
		NPCs:        gated(d.NPCs, p, func(n NPC) common.Gate { return n.When }),
		Modifiers:   gated(d.Modifiers, p, func(m Modifier) common.Gate { return m.When }),
		Decorations: gated(d.Decorations, p, func(dc Decoration) common.Gate { return dc.When }),
	}
}

// Track returns the BGM for p. The first matching variant wins over BGM.
func (d *Descriptor) Track(p common.Progression) string {
	for _, v := range d.BGMVariants {
		if v.When.Allows(p) {
			return v.Track
		}
	}
	return d.BGM
}

// SensorByIndex finds the transition sensor with index at progression p.
func (d *Descriptor) SensorByIndex(p common.Progression, index int) (Sensor, bool) {
	for _, s := range d.Sensors {
		if s.Index == index && s.When.Allows(p) {
			return s, true
		}
	}
	return Sensor{}, false
}

func gated[T any](items []T, p common.Progression, gate func(T) common.Gate) []T {
	var out []T
	for _, it := range items {
		if gate(it).Allows(p) {
			out = append(out, it)
		}
	}
	return out
}
