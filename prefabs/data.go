package prefabs

import (
	"fmt"

	"github.com/milk9111/digipet/pet"
)

// Bundle is everything the game reads from prefabs at startup or reload.
type Bundle struct {
	Pet    PetSpec
	Data   pet.Data
	Config pet.Config
	Script []byte
}

// LoadBundle reads and validates all data files.
func LoadBundle() (Bundle, error) {
	ps, err := LoadPetSpec()
	if err != nil {
		return Bundle{}, err
	}
	species, err := LoadSpeciesSpec()
	if err != nil {
		return Bundle{}, err
	}
	anims, err := LoadAnimationsSpec()
	if err != nil {
		return Bundle{}, err
	}
	evo, err := LoadEvolutionSpec()
	if err != nil {
		return Bundle{}, err
	}

	data, err := BuildData(ps.Start, species, anims, evo)
	if err != nil {
		return Bundle{}, err
	}

	b := Bundle{Pet: ps, Data: data, Config: ps.Config()}
	if ps.Rules.Script != "" {
		src, err := LoadScript(ps.Rules.Script)
		if err != nil {
			return Bundle{}, fmt.Errorf("prefabs: load script %s: %w", ps.Rules.Script, err)
		}
		b.Script = src
	}
	return b, nil
}

// BuildData turns decoded specs into the pet's catalog and chain.
func BuildData(start string, species []SpeciesSpec, anims AnimationsSpec, evo EvolutionSpec) (pet.Data, error) {
	list := make([]pet.Species, 0, len(species))
	seen := make(map[string]bool, len(species))
	for _, s := range species {
		if s.ID == "" || s.StartFrame < 1 {
			return pet.Data{}, fmt.Errorf("prefabs: %s: invalid species %+v", SpeciesFile, s)
		}
		if seen[s.ID] {
			return pet.Data{}, fmt.Errorf("prefabs: %s: duplicate species %q", SpeciesFile, s.ID)
		}
		seen[s.ID] = true
		list = append(list, pet.Species{ID: s.ID, StartFrame: s.StartFrame})
	}
	catalog := pet.NewCatalog(list, anims)

	edges := make([]pet.Edge, 0, len(evo.Edges))
	for _, e := range evo.Edges {
		edges = append(edges, pet.Edge{
			From: e.From,
			To:   e.To,
			Thresholds: pet.Thresholds{
				Age:      e.Age,
				Hunger:   e.Hunger,
				Strength: e.Strength,
				Training: e.Training,
			},
		})
	}
	chain, err := pet.NewChain(catalog, edges)
	if err != nil {
		return pet.Data{}, fmt.Errorf("prefabs: %s: %w", EvolutionFile, err)
	}

	if start == "" && len(list) > 0 {
		start = list[0].ID
	}
	if _, err := catalog.Species(start); err != nil {
		return pet.Data{}, fmt.Errorf("prefabs: %s: start: %w", PetFile, err)
	}
	return pet.Data{Catalog: catalog, Chain: chain, Start: start}, nil
}

// Config overlays the keys present in s onto pet.DefaultConfig. Frame rates
// and the rule interval only apply when positive; rates only when not negative.
func (s PetSpec) Config() pet.Config {
	cfg := pet.DefaultConfig()

	st := s.Status
	setIf(&cfg.Status.Initial.Hunger, st.Hunger, anyValue)
	setIf(&cfg.Status.Initial.Strength, st.Strength, anyValue)
	setIf(&cfg.Status.Initial.Happiness, st.Happiness, anyValue)
	setIf(&cfg.Status.HungerDecay, st.HungerDecay, nonNegative)
	setIf(&cfg.Status.FeedAmount, st.FeedAmount, nonNegative)
	setIf(&cfg.Status.TrainStrength, st.TrainStrength, nonNegative)

	if s.Idle.FrameRate > 0 {
		cfg.Idle.FrameRate = s.Idle.FrameRate
	}
	if r := s.Idle.Repeat; r != nil && *r >= -1 {
		cfg.Idle.Repeat = *r
	}

	f := s.Feeding
	if len(f.Stages) > 0 {
		cfg.Feeding.Stages = append([]int(nil), f.Stages...)
	}
	if f.FrameRate > 0 {
		cfg.Feeding.FrameRate = f.FrameRate
	}
	setIf(&cfg.Feeding.OffsetX, f.OffsetX, anyValue)
	setIf(&cfg.Feeding.OffsetY, f.OffsetY, anyValue)

	if s.Rules.Interval > 0 {
		cfg.RuleInterval = s.Rules.Interval
	}
	return cfg
}

// ImageKeys lists every image the game should preload: digimon_1..frames and
// one meat_<n> per food stage.
func ImageKeys(frames int, stages []int) []string {
	keys := make([]string, 0, frames+len(stages))
	for n := 1; n <= frames; n++ {
		keys = append(keys, pet.FrameKey(n))
	}
	for _, st := range stages {
		keys = append(keys, pet.FoodKey(st))
	}
	return keys
}

func anyValue(float64) bool { return true }

func nonNegative(v float64) bool { return v >= 0 }

// setIf copies *v into dst when the key was present and ok accepts it.
func setIf(dst *float64, v *float64, ok func(float64) bool) {
	if v != nil && ok(*v) {
		*dst = *v
	}
}
