package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type Ability string

const (
	AbilityDoubleJump Ability = "double_jump"
	AbilityWallJump   Ability = "wall_jump"
	AbilityDash       Ability = "dash"
)

func ParseAbility(s string) (Ability, error) {
	switch a := Ability(s); a {
	case AbilityDoubleJump, AbilityWallJump, AbilityDash:
		return a, nil
	}
	return "", fmt.Errorf("unknown ability %q", s)
}

func (a *Ability) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseAbility(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = parsed
	return nil
}
