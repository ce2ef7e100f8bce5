package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	PetFile       = "pet.yaml"
	SpeciesFile   = "digimon_list.json"
	AnimationFile = "animations.json"
	EvolutionFile = "evolution.yaml"
)

// LoadSpec decodes a data file into T. JSON files go through the same
// decoder since JSON is valid YAML.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PetSpec is pet.yaml: tunables for the pet, the window and the HUD.
type PetSpec struct {
	Start   string      `yaml:"start"`
	Status  StatusSpec  `yaml:"status"`
	Idle    PlaySpec    `yaml:"idle"`
	Feeding FeedingSpec `yaml:"feeding"`
	Rules   RulesSpec   `yaml:"rules"`
	Display DisplaySpec `yaml:"display"`
	HUD     HUDSpec     `yaml:"hud"`
}

// StatusSpec fields are pointers so an explicit 0 is told apart from a
// missing key.
type StatusSpec struct {
	Hunger        *float64 `yaml:"hunger"`
	Strength      *float64 `yaml:"strength"`
	Happiness     *float64 `yaml:"happiness"`
	HungerDecay   *float64 `yaml:"hunger_decay"`
	FeedAmount    *float64 `yaml:"feed_amount"`
	TrainStrength *float64 `yaml:"train_strength"`
}

type PlaySpec struct {
	FrameRate float64 `yaml:"frame_rate"`
	Repeat    *int    `yaml:"repeat"`
}

type FeedingSpec struct {
	Stages    []int    `yaml:"stages"`
	FrameRate float64  `yaml:"frame_rate"`
	OffsetX   *float64 `yaml:"offset_x"`
	OffsetY   *float64 `yaml:"offset_y"`
}

type RulesSpec struct {
	Interval time.Duration `yaml:"interval"`
	Script   string        `yaml:"script"`
}

type DisplaySpec struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	BodyX  float64 `yaml:"body_x"`
	BodyY  float64 `yaml:"body_y"`
	Frames int     `yaml:"frames"`
}

type HUDSpec struct {
	Background YAMLColor `yaml:"background"`
	Good       YAMLColor `yaml:"good"`
	Warn       YAMLColor `yaml:"warn"`
	Bad        YAMLColor `yaml:"bad"`
	Notice     float64   `yaml:"notice_seconds"`
}

// SpeciesSpec is one entry of digimon_list.json.
type SpeciesSpec struct {
	ID         string `yaml:"id"`
	StartFrame int    `yaml:"start_frame"`
}

// AnimationsSpec is animations.json: animation name to 1-based pattern.
type AnimationsSpec map[string][]int

// EvolutionSpec is evolution.yaml.
type EvolutionSpec struct {
	Edges []EdgeSpec `yaml:"edges"`
}

type EdgeSpec struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Age      float64 `yaml:"age"`
	Hunger   float64 `yaml:"hunger"`
	Strength float64 `yaml:"strength"`
	Training int     `yaml:"training"`
}

func LoadPetSpec() (PetSpec, error) {
	return LoadSpec[PetSpec](PetFile)
}

func LoadSpeciesSpec() ([]SpeciesSpec, error) {
	return LoadSpec[[]SpeciesSpec](SpeciesFile)
}

func LoadAnimationsSpec() (AnimationsSpec, error) {
	return LoadSpec[AnimationsSpec](AnimationFile)
}

func LoadEvolutionSpec() (EvolutionSpec, error) {
	return LoadSpec[EvolutionSpec](EvolutionFile)
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
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

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		ch[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}

// Or returns c, or fallback when c was never set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
