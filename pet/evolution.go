package pet

import (
	"fmt"
	"log/slog"
)

// Thresholds are the minimum stats an evolution edge requires.
type Thresholds struct {
	Age      float64
	Hunger   float64
	Strength float64
	Training int
}

// Met reports whether every threshold is satisfied by s.
func (t Thresholds) Met(s Status) bool {
	return s.Age >= t.Age &&
		s.Hunger >= t.Hunger &&
		s.Strength >= t.Strength &&
		s.Training >= t.Training
}

// Edge is one step of the evolution chain.
type Edge struct {
	From       string
	To         string
	Thresholds Thresholds
}

// Chain is a linear evolution chain: at most one edge leaves each species.
type Chain struct {
	edges map[string]Edge
	order []string
}

// NewChain validates edges against the catalog. Branching, cycles and unknown
// species are rejected.
func NewChain(catalog *Catalog, edges []Edge) (*Chain, error) {
	c := &Chain{edges: make(map[string]Edge, len(edges))}
	for _, e := range edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("%w: edge %q -> %q", ErrInvalidChain, e.From, e.To)
		}
		if _, dup := c.edges[e.From]; dup {
			return nil, fmt.Errorf("%w: %q has more than one successor", ErrInvalidChain, e.From)
		}
		for _, id := range []string{e.From, e.To} {
			if _, err := catalog.Species(id); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidChain, err)
			}
		}
		c.edges[e.From] = e
		c.order = append(c.order, e.From)
	}
	for _, start := range c.order {
		seen := map[string]bool{start: true}
		for cur := start; ; {
			e, ok := c.edges[cur]
			if !ok {
				break
			}
			if seen[e.To] {
				return nil, fmt.Errorf("%w: cycle through %q", ErrInvalidChain, e.To)
			}
			seen[e.To] = true
			cur = e.To
		}
	}
	return c, nil
}

// Next returns the single edge leaving speciesID.
func (c *Chain) Next(speciesID string) (Edge, bool) {
	if c == nil {
		return Edge{}, false
	}
	e, ok := c.edges[speciesID]
	return e, ok
}

// Terminal reports whether speciesID has no successor.
func (c *Chain) Terminal(speciesID string) bool {
	_, ok := c.Next(speciesID)
	return !ok
}

// EvolutionController advances the shared species along the chain.
type EvolutionController struct {
	data   *shared
	anim   *AnimationPlayer
	engine Engine
	body   ObjectID
	log    *slog.Logger
}

func newEvolutionController(data *shared, anim *AnimationPlayer, engine Engine, body ObjectID, log *slog.Logger) *EvolutionController {
	return &EvolutionController{data: data, anim: anim, engine: engine, body: body, log: log}
}

// Check evaluates the edge leaving the current species and evolves at most one
// step. It returns the edge taken.
func (e *EvolutionController) Check() (Edge, bool) {
	edge, ok := e.Ready()
	if !ok {
		return Edge{}, false
	}
	e.Evolve(edge)
	return edge, true
}

// Ready returns the edge leaving the current species when all of its
// thresholds hold.
func (e *EvolutionController) Ready() (Edge, bool) {
	edge, ok := e.data.chain.Next(e.data.species)
	if !ok || edge.From != e.data.species {
		return Edge{}, false
	}
	if !edge.Thresholds.Met(e.data.status.Snapshot()) {
		return Edge{}, false
	}
	return edge, true
}

// Evolve moves the pet along edge and retargets the body to the new form.
func (e *EvolutionController) Evolve(edge Edge) {
	e.data.species = edge.To
	e.log.Info("evolved", "from", edge.From, "to", edge.To)

	if err := e.anim.PlayIdle(edge.To); err != nil {
		// Still swap the base frame so the new form shows even without an idle clip.
		e.anim.Stop()
	}
	if sp, err := e.data.catalog.Species(edge.To); err == nil {
		key := e.baseFrame(sp)
		if err := e.engine.SetImage(e.body, key); err != nil {
			logImageError(e.log, key, err)
		}
	}
}

// baseFrame is the first idle frame of sp, or its start frame when idle is missing.
func (e *EvolutionController) baseFrame(sp Species) string {
	if p, err := e.data.catalog.Pattern(AnimIdle); err == nil {
		return FrameKey(FrameNumber(sp.StartFrame, p[0]))
	}
	return FrameKey(sp.StartFrame)
}
