package common

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Progression is the story ordinal stored on the character. Values are
// ordered; later story beats compare greater.
type Progression int

const (
	ProgressionNone Progression = iota
	ProgressionMetMilk
	ProgressionHasCherish
	ProgressionMilkWokeUp
	ProgressionHasLetter
	ProgressionGivenLetter
	ProgressionRisingStar
)

var progressionNames = []string{
	"none",
	"met_milk",
	"has_cherish",
	"milk_woke_up",
	"has_letter",
	"given_letter",
	"rising_star",
}

func (p Progression) String() string {
	if p < 0 || int(p) >= len(progressionNames) {
		return fmt.Sprintf("progression(%d)", int(p))
	}
	return progressionNames[p]
}

func ParseProgression(s string) (Progression, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range progressionNames {
		if name == key {
			return Progression(i), nil
		}
	}
	return ProgressionNone, fmt.Errorf("unknown progression %q", s)
}

func (p *Progression) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseProgression(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = parsed
	return nil
}

// Gate limits a level element to a progression range. From is inclusive,
// Until is exclusive; a nil bound is open.
type Gate struct {
	From  *Progression `yaml:"from,omitempty"`
	Until *Progression `yaml:"until,omitempty"`
}

func (g Gate) Allows(p Progression) bool {
	if g.From != nil && p < *g.From {
		return false
	}
	if g.Until != nil && p >= *g.Until {
		return false
	}
	return true
}
