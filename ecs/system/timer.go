package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
)

// epsilon absorbs float drift from repeated dt subtraction.
const epsilon = 1e-9

// TimerSystem counts timers down and fires them, destroying the timer entity
// first so callbacks may schedule new timers freely.
type TimerSystem struct {
	dt float64
}

func NewTimerSystem(tps int) *TimerSystem {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &TimerSystem{dt: 1 / float64(tps)}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var due []func()
	ecs.ForEach(w, component.TimerComponent.Kind(), func(e ecs.Entity, timer *component.Timer) {
		timer.Remaining -= s.dt
		if timer.Remaining > epsilon {
			return
		}
		ecs.DestroyEntity(w, e)
		if timer.Fn != nil {
			due = append(due, timer.Fn)
		}
	})
	for _, fn := range due {
		fn()
	}
}
