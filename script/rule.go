// Package script runs tengo status rules against the pet's attributes.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/digipet/pet"
)

// DefaultTimeout bounds a single rule run.
const DefaultTimeout = 50 * time.Millisecond

// Rule is a compiled tengo script implementing pet.StatusRule. The script
// sees hunger, strength, happiness, age, training, sleeping and memory as
// globals; hunger, strength, happiness and sleeping are read back after the
// run. memory is a map that survives between runs.
type Rule struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	timeout  time.Duration
}

var _ pet.StatusRule = (*Rule)(nil)

func NewRule(name string, src []byte) (*Rule, error) {
	script := tengo.NewScript(src)
	_ = script.Add("hunger", 0.0)
	_ = script.Add("strength", 0.0)
	_ = script.Add("happiness", 0.0)
	_ = script.Add("age", 0.0)
	_ = script.Add("training", 0)
	_ = script.Add("sleeping", false)
	_ = script.Add("memory", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Rule{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		timeout:  DefaultTimeout,
	}, nil
}

func (r *Rule) Name() string {
	return r.name
}

// Apply runs the script once. On error s is returned unchanged.
func (r *Rule) Apply(s pet.Status) (pet.Status, error) {
	vars := []struct {
		name  string
		value any
	}{
		{"hunger", s.Hunger},
		{"strength", s.Strength},
		{"happiness", s.Happiness},
		{"age", s.Age},
		{"training", s.Training},
		{"sleeping", s.Sleeping},
		{"memory", r.memory},
	}
	for _, v := range vars {
		if err := r.compiled.Set(v.name, v.value); err != nil {
			return s, fmt.Errorf("script: %s: set %s: %w", r.name, v.name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.compiled.RunContext(ctx); err != nil {
		return s, fmt.Errorf("script: run %s: %w", r.name, err)
	}

	out := s
	out.Hunger = r.compiled.Get("hunger").Float()
	out.Strength = r.compiled.Get("strength").Float()
	out.Happiness = r.compiled.Get("happiness").Float()
	out.Sleeping = r.compiled.Get("sleeping").Bool()
	return out, nil
}
