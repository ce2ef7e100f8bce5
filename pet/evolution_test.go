package pet

import (
	"errors"
	"testing"
	"time"
)

func TestNewChainValidation(t *testing.T) {
	c := testCatalog()
	cases := []struct {
		name  string
		edges []Edge
	}{
		{"branching", []Edge{{From: "botamon", To: "koromon"}, {From: "botamon", To: "agumon"}}},
		{"cycle", []Edge{{From: "botamon", To: "koromon"}, {From: "koromon", To: "botamon"}}},
		{"self_loop", []Edge{{From: "agumon", To: "agumon"}}},
		{"unknown_species", []Edge{{From: "botamon", To: "greymon"}}},
		{"empty_id", []Edge{{From: "", To: "koromon"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewChain(c, tc.edges); !errors.Is(err, ErrInvalidChain) {
				t.Fatalf("expected invalid chain, got %v", err)
			}
		})
	}

	chain := testChain(c)
	if chain.Terminal("botamon") || !chain.Terminal("agumon") {
		t.Fatalf("unexpected terminal flags")
	}
}

func TestThresholdsMet(t *testing.T) {
	th := Thresholds{Age: 10, Hunger: 50, Strength: 5, Training: 10}
	ok := Status{Age: 10, Hunger: 50, Strength: 5, Training: 10}
	if !th.Met(ok) {
		t.Fatalf("expected exact thresholds to be met")
	}

	cases := []struct {
		name string
		s    Status
	}{
		{"age", Status{Age: 9.99, Hunger: 50, Strength: 5, Training: 10}},
		{"hunger", Status{Age: 10, Hunger: 49, Strength: 5, Training: 10}},
		{"strength", Status{Age: 10, Hunger: 50, Strength: 4, Training: 10}},
		{"training", Status{Age: 10, Hunger: 50, Strength: 5, Training: 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if th.Met(tc.s) {
				t.Fatalf("unmet %s should block", tc.name)
			}
		})
	}
}

func TestEvolutionScenario(t *testing.T) {
	p, eng, clock := newTestPet()

	for i := 0; i < 5; i++ {
		p.Update(clock.Advance(3 * time.Second))
	}
	s := p.Status()
	if s.Hunger != 85 || s.Age != 15 {
		t.Fatalf("expected hunger 85 age 15, got %+v", s)
	}
	if p.Species() != "botamon" {
		t.Fatalf("must not evolve with training unmet, got %s", p.Species())
	}

	for i := 0; i < 10; i++ {
		p.Train()
	}
	p.Update(clock.Now())
	if p.Species() != "koromon" {
		t.Fatalf("expected evolution to koromon, got %s", p.Species())
	}
	if p.Animation() != AnimIdle || eng.playing[testBody] != "koromon_idle" {
		t.Fatalf("expected koromon idle after evolution, got %s / %s", p.Animation(), eng.playing[testBody])
	}
	if eng.images[testBody] != "digimon_13" {
		t.Fatalf("expected base frame swapped to digimon_13, got %s", eng.images[testBody])
	}
	if got := p.Status(); got.Training != 10 || got.Age != 15 {
		t.Fatalf("stats must not be reset by evolution: %+v", got)
	}
	if p.State() != StateIdle {
		t.Fatalf("expected idle after evolution, got %s", p.State())
	}
}

func TestEvolutionOneStepPerTick(t *testing.T) {
	var notices []Notice
	cfg := DefaultConfig()
	cfg.Status.HungerDecay = 0
	p, _, clock := newTestPet(WithConfig(cfg), WithNoticeHandler(func(n Notice) { notices = append(notices, n) }))

	p.data.status.SetStrength(50)
	for i := 0; i < 20; i++ {
		p.Train()
	}
	// A large jump satisfies both edges at once.
	p.Update(clock.Advance(90 * time.Second))
	if p.Species() != "koromon" {
		t.Fatalf("expected a single step to koromon, got %s", p.Species())
	}

	p.Update(clock.Now())
	if p.Species() != "agumon" {
		t.Fatalf("expected second step to agumon, got %s", p.Species())
	}

	p.Update(clock.Advance(time.Hour))
	if p.Species() != "agumon" {
		t.Fatalf("terminal species must not change, got %s", p.Species())
	}

	if len(notices) != 2 || notices[0].To != "koromon" || notices[1].From != "koromon" {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestEvolutionIsMonotonic(t *testing.T) {
	p, _, clock := newTestPet()
	for i := 0; i < 10; i++ {
		p.Train()
	}
	p.Update(clock.Advance(11 * time.Second))
	if p.Species() != "koromon" {
		t.Fatalf("expected koromon, got %s", p.Species())
	}

	// Stats falling back below the first edge never revert the form.
	p.data.status.SetHunger(0)
	for i := 0; i < 10; i++ {
		p.Update(clock.Advance(time.Second))
		if p.Species() == "botamon" {
			t.Fatalf("species reverted")
		}
	}
}

func TestEvolutionDeferredWhileFeeding(t *testing.T) {
	p, _, clock := newTestPet()
	for i := 0; i < 10; i++ {
		p.Train()
	}
	if !p.Feed() {
		t.Fatalf("feed rejected")
	}
	p.Update(clock.Advance(20 * time.Second))
	if p.Species() != "botamon" {
		t.Fatalf("evolution should wait for feeding to finish")
	}
}
