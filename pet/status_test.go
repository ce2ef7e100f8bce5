package pet

import (
	"math"
	"testing"
)

func TestStatusModelDefaults(t *testing.T) {
	m := NewStatusModel(DefaultStatusConfig())
	s := m.Snapshot()
	if s.Hunger != 100 || s.Strength != 0 || s.Happiness != 50 || s.Age != 0 || s.Training != 0 || s.Sleeping {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestStatusModelTickDecay(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		ticks   []float64
		want    float64
		wantAge float64
	}{
		{"single_second", 100, []float64{1}, 99, 1},
		{"five_by_three", 100, []float64{3, 3, 3, 3, 3}, 85, 15},
		{"fractional", 50, []float64{0.25, 0.25}, 49.5, 0.5},
		{"floors_at_zero", 5, []float64{10}, 0, 10},
		{"zero_elapsed", 40, []float64{0}, 40, 0},
		{"negative_ignored", 40, []float64{-5}, 40, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultStatusConfig()
			cfg.Initial.Hunger = c.start
			m := NewStatusModel(cfg)
			for _, dt := range c.ticks {
				m.Tick(dt)
				h := m.Snapshot().Hunger
				if h < 0 || h > 100 {
					t.Fatalf("hunger left range: %v", h)
				}
			}
			s := m.Snapshot()
			if math.Abs(s.Hunger-c.want) > 1e-9 {
				t.Fatalf("expected hunger %v, got %v", c.want, s.Hunger)
			}
			if math.Abs(s.Age-c.wantAge) > 1e-9 {
				t.Fatalf("expected age %v, got %v", c.wantAge, s.Age)
			}
		})
	}
}

func TestStatusModelTickMatchesClosedForm(t *testing.T) {
	m := NewStatusModel(DefaultStatusConfig())
	for i := 0; i < 200; i++ {
		before := m.Snapshot().Hunger
		dt := float64(i%7) * 0.37
		m.Tick(dt)
		want := math.Max(0, before-dt)
		if got := m.Snapshot().Hunger; math.Abs(got-want) > 1e-9 {
			t.Fatalf("step %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestStatusModelStarvingIsEdgeTriggered(t *testing.T) {
	cfg := DefaultStatusConfig()
	cfg.Initial.Hunger = 2
	m := NewStatusModel(cfg)

	if m.Tick(1) {
		t.Fatalf("should not starve at hunger 1")
	}
	if !m.Tick(1) {
		t.Fatalf("expected starving notification when hunger hits 0")
	}
	if m.Tick(1) {
		t.Fatalf("starving should be reported once")
	}
	m.Feed()
	if m.Tick(1) {
		t.Fatalf("hunger 9 is not starving")
	}
	if !m.Tick(20) {
		t.Fatalf("expected re-armed starving notification")
	}
}

func TestStatusModelFeedCaps(t *testing.T) {
	cases := []struct {
		start, want float64
	}{
		{50, 60},
		{95, 100},
		{100, 100},
		{0, 10},
	}
	for _, c := range cases {
		cfg := DefaultStatusConfig()
		cfg.Initial.Hunger = c.start
		m := NewStatusModel(cfg)
		m.Feed()
		if got := m.Snapshot().Hunger; got != c.want {
			t.Fatalf("feed from %v: expected %v, got %v", c.start, c.want, got)
		}
	}
}

func TestStatusModelSettersClamp(t *testing.T) {
	m := NewStatusModel(DefaultStatusConfig())

	m.SetHunger(150)
	m.SetHappiness(-3)
	m.SetStrength(-1)
	s := m.Snapshot()
	if s.Hunger != 100 || s.Happiness != 0 || s.Strength != 0 {
		t.Fatalf("expected clamped values, got %+v", s)
	}

	m.SetHunger(math.NaN())
	m.SetHappiness(120)
	m.SetStrength(42)
	s = m.Snapshot()
	if s.Hunger != 0 || s.Happiness != 100 || s.Strength != 42 {
		t.Fatalf("unexpected values after second set: %+v", s)
	}
}

func TestStatusModelTrain(t *testing.T) {
	m := NewStatusModel(DefaultStatusConfig())
	for i := 0; i < 3; i++ {
		m.Train()
	}
	s := m.Snapshot()
	if s.Training != 3 || s.Strength != 3 {
		t.Fatalf("expected training=3 strength=3, got %+v", s)
	}
}
