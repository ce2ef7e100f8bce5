package pet

import "math"

const (
	maxHunger    = 100
	maxHappiness = 100
)

// Status is the shared attribute block of a pet.
type Status struct {
	Hunger    float64
	Strength  float64
	Happiness float64
	Age       float64
	Training  int
	Sleeping  bool
}

// StatusConfig tunes the status rules.
type StatusConfig struct {
	Initial       Status
	HungerDecay   float64 // per real second
	FeedAmount    float64
	TrainStrength float64
}

// DefaultStatusConfig returns the shipped defaults.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		Initial:       Status{Hunger: 100, Happiness: 50},
		HungerDecay:   1,
		FeedAmount:    10,
		TrainStrength: 1,
	}
}

// StatusModel owns the numeric attributes and their time-based rules.
type StatusModel struct {
	cfg     StatusConfig
	s       Status
	starved bool
}

// NewStatusModel creates a model seeded from cfg.Initial.
func NewStatusModel(cfg StatusConfig) *StatusModel {
	m := &StatusModel{cfg: cfg}
	m.SetHunger(cfg.Initial.Hunger)
	m.SetStrength(cfg.Initial.Strength)
	m.SetHappiness(cfg.Initial.Happiness)
	if cfg.Initial.Age > 0 {
		m.s.Age = cfg.Initial.Age
	}
	if cfg.Initial.Training > 0 {
		m.s.Training = cfg.Initial.Training
	}
	m.s.Sleeping = cfg.Initial.Sleeping
	m.starved = m.s.Hunger <= 0
	return m
}

// Tick decays hunger and ages the pet by elapsed real seconds. It reports true
// once when hunger first reaches zero.
func (m *StatusModel) Tick(elapsed float64) bool {
	if !(elapsed > 0) {
		return false
	}
	m.s.Age += elapsed
	m.SetHunger(m.s.Hunger - m.cfg.HungerDecay*elapsed)
	if m.s.Hunger > 0 {
		m.starved = false
		return false
	}
	if m.starved {
		return false
	}
	m.starved = true
	return true
}

// Feed raises hunger by the configured amount, capped at 100.
func (m *StatusModel) Feed() {
	m.SetHunger(m.s.Hunger + m.cfg.FeedAmount)
	if m.s.Hunger > 0 {
		m.starved = false
	}
}

// Train bumps the training counter and strength.
func (m *StatusModel) Train() {
	m.s.Training++
	m.SetStrength(m.s.Strength + m.cfg.TrainStrength)
}

func (m *StatusModel) SetHunger(v float64) {
	m.s.Hunger = clamp(v, 0, maxHunger)
}

func (m *StatusModel) SetStrength(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	m.s.Strength = v
}

func (m *StatusModel) SetHappiness(v float64) {
	m.s.Happiness = clamp(v, 0, maxHappiness)
}

func (m *StatusModel) SetSleeping(v bool) {
	m.s.Sleeping = v
}

// Snapshot returns a copy of the current status.
func (m *StatusModel) Snapshot() Status {
	return m.s
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
