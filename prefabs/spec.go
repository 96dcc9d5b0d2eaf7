package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// PuffSpec holds the character tunables.
type PuffSpec struct {
	Name          string  `yaml:"name"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	GravityScale  float64 `yaml:"gravity_scale"`
	Speed         float64 `yaml:"speed"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	CoyoteSeconds float64 `yaml:"coyote_seconds"`
	DashImpulse   float64 `yaml:"dash_impulse"`
	DashCooldown  float64 `yaml:"dash_cooldown"`
	MaxDash       float64 `yaml:"max_dash"`
	MaxFall       float64 `yaml:"max_fall"`
	MaxWallSlide  float64 `yaml:"max_wall_slide"`
	StunDuration  float64 `yaml:"stun_duration"`
	Sprite        string  `yaml:"sprite"`
}

func LoadPuffSpec() (*PuffSpec, error) {
	spec, err := LoadSpec[PuffSpec]("puff.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name         string  `yaml:"name"`
	Smoothness   float64 `yaml:"smoothness"`
	PeekHold     float64 `yaml:"peek_hold"`
	PeekDistance float64 `yaml:"peek_distance"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// FadeSpec configures the transition overlay and the music handover.
type FadeSpec struct {
	Rate    float64    `yaml:"rate"`
	BGMStep float64    `yaml:"bgm_step"`
	Color   *YAMLColor `yaml:"color"`
}

func LoadFadeSpec() (*FadeSpec, error) {
	spec, err := LoadSpec[FadeSpec]("fade.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CutsceneSpec struct {
	Frames int    `yaml:"frames"`
	Level  string `yaml:"level"`
	// X and Y place the character when the cutscene hands over to play.
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Credits returns to the credits menu instead of the game.
	Credits bool `yaml:"credits"`
}

type CutscenesSpec struct {
	Intro     string                  `yaml:"intro"`
	Cutscenes map[string]CutsceneSpec `yaml:"cutscenes"`
}

func LoadCutscenesSpec() (*CutscenesSpec, error) {
	spec, err := LoadSpec[CutscenesSpec]("cutscenes.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// CheatSpec maps a cheat letter to a level prefix and the abilities and
// progression granted when jumping there.
type CheatSpec struct {
	Prefix      string   `yaml:"prefix"`
	Abilities   []string `yaml:"abilities"`
	Progression string   `yaml:"progression"`
}

type CheatsSpec struct {
	Levels map[string]CheatSpec `yaml:"levels"`
}

func LoadCheatsSpec() (*CheatsSpec, error) {
	spec, err := LoadSpec[CheatsSpec]("cheats.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
