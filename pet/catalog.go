package pet

import "strconv"

// Species is one creature form and its offset into the flat frame-image space.
type Species struct {
	ID         string
	StartFrame int
}

// Catalog holds the species list and the animation patterns shared by all species.
type Catalog struct {
	species  []Species
	byID     map[string]int
	patterns map[string][]int
}

// NewCatalog copies the given species and patterns. Later duplicate ids win.
func NewCatalog(species []Species, patterns map[string][]int) *Catalog {
	c := &Catalog{
		species:  append([]Species(nil), species...),
		byID:     make(map[string]int, len(species)),
		patterns: make(map[string][]int, len(patterns)),
	}
	for i, s := range c.species {
		c.byID[s.ID] = i
	}
	for name, p := range patterns {
		c.patterns[name] = append([]int(nil), p...)
	}
	return c
}

// Species resolves a species by id.
func (c *Catalog) Species(id string) (Species, error) {
	if c == nil {
		return Species{}, &LookupError{Kind: "species", Name: id}
	}
	idx, ok := c.byID[id]
	if !ok {
		return Species{}, &LookupError{Kind: "species", Name: id}
	}
	return c.species[idx], nil
}

// Pattern resolves an animation pattern. A pattern must be non-empty and hold only
// 1-based indices.
func (c *Catalog) Pattern(name string) ([]int, error) {
	if c == nil {
		return nil, &LookupError{Kind: "animation", Name: name}
	}
	p, ok := c.patterns[name]
	if !ok || len(p) == 0 {
		return nil, &LookupError{Kind: "animation", Name: name}
	}
	for _, v := range p {
		if v < 1 {
			return nil, &LookupError{Kind: "animation", Name: name}
		}
	}
	return append([]int(nil), p...), nil
}

// FrameKeys resolves the ordered image keys for an animation of a species.
func (c *Catalog) FrameKeys(speciesID, name string) ([]string, error) {
	s, err := c.Species(speciesID)
	if err != nil {
		return nil, err
	}
	p, err := c.Pattern(name)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(p))
	for i, v := range p {
		keys[i] = FrameKey(FrameNumber(s.StartFrame, v))
	}
	return keys, nil
}

// FrameNumber maps a 1-based pattern index onto the species' frame range.
func FrameNumber(startFrame, patternIndex int) int {
	return startFrame + (patternIndex - 1)
}

// FrameKey is the image identifier of a creature frame.
func FrameKey(frame int) string {
	return "digimon_" + strconv.Itoa(frame)
}

// FoodKey is the image identifier of a food depletion stage.
func FoodKey(stage int) string {
	return "meat_" + strconv.Itoa(stage)
}

// ClipKey names the materialized clip of an animation for a species.
func ClipKey(speciesID, name string) string {
	return speciesID + "_" + name
}
