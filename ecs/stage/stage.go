// Package stage runs the pet's render collaborator on top of the ECS world:
// bodies and props are entities, clips play through the animation system and
// clip events come back through the world event queue.
package stage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
	"github.com/milk9111/digipet/ecs/render"
	"github.com/milk9111/digipet/ecs/system"
	"github.com/milk9111/digipet/pet"
)

var (
	ErrUnknownObject = errors.New("stage: unknown object")
	ErrUnknownClip   = errors.New("stage: unknown clip")
)

// Stage implements pet.Engine.
type Stage struct {
	w        *ecs.World
	images   system.ImageSource
	anim     *system.AnimationSystem
	clips    *render.ClipLibrary
	log      *slog.Logger
	playback uint64
	subs     []func(pet.ClipEvent)
}

var _ pet.Engine = (*Stage)(nil)

func New(w *ecs.World, images system.ImageSource, anim *system.AnimationSystem, log *slog.Logger) *Stage {
	if log == nil {
		log = slog.Default()
	}
	return &Stage{
		w:      w,
		images: images,
		anim:   anim,
		clips:  render.NewClipLibrary(),
		log:    log,
	}
}

// World returns the world the stage spawns into.
func (s *Stage) World() *ecs.World {
	return s.w
}

// Clips exposes the bound clip library.
func (s *Stage) Clips() *render.ClipLibrary {
	return s.clips
}

// SpawnBody creates the pet's body entity at x, y showing key.
func (s *Stage) SpawnBody(key string, x, y, scale float64) (pet.ObjectID, error) {
	e := ecs.CreateEntity(s.w)
	sprite := &component.Sprite{}
	s.show(sprite, key)
	if err := s.attach(e,
		func() error { return ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: scale, ScaleY: scale}) },
		func() error { return ecs.Add(s.w, e, component.SpriteComponent.Kind(), sprite) },
		func() error { return ecs.Add(s.w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 0}) },
		func() error { return ecs.Add(s.w, e, component.PetTagComponent.Kind(), &component.PetTag{}) },
	); err != nil {
		return 0, err
	}
	return pet.ObjectID(e), nil
}

func (s *Stage) BindClip(key string, clip pet.Clip) error {
	return s.clips.Bind(key, clip)
}

// UnbindClip forgets key and stops anything still playing it.
func (s *Stage) UnbindClip(key string) {
	s.clips.Unbind(key)
	ecs.ForEach(s.w, component.ClipPlayerComponent.Kind(), func(e ecs.Entity, cp *component.ClipPlayer) {
		if cp.Clip == key {
			ecs.Remove(s.w, e, component.ClipPlayerComponent.Kind())
		}
	})
}

func (s *Stage) SetImage(obj pet.ObjectID, key string) error {
	sprite, ok := ecs.Get(s.w, ecs.Entity(obj), component.SpriteComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, obj)
	}
	if !s.show(sprite, key) {
		return fmt.Errorf("%w: %s", pet.ErrRenderResourceMissing, key)
	}
	return nil
}

// PlayClip restarts obj's clip player from the first frame. Any clip already
// playing on obj is replaced without a completion event.
func (s *Stage) PlayClip(obj pet.ObjectID, key string) (pet.Playback, error) {
	e := ecs.Entity(obj)
	sprite, ok := ecs.Get(s.w, e, component.SpriteComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownObject, obj)
	}
	clip, ok := s.clips.Clip(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownClip, key)
	}

	s.playback++
	cp := &component.ClipPlayer{
		Clip:      key,
		Frames:    clip.Frames,
		FrameRate: clip.FrameRate,
		Repeat:    clip.Repeat,
		Playing:   true,
		Playback:  s.playback,
	}
	if err := ecs.Add(s.w, e, component.ClipPlayerComponent.Kind(), cp); err != nil {
		return 0, err
	}
	s.show(sprite, clip.Frames[0])
	return pet.Playback(s.playback), nil
}

// StopClip drops obj's clip player; the current frame stays on screen.
func (s *Stage) StopClip(obj pet.ObjectID) {
	ecs.Remove(s.w, ecs.Entity(obj), component.ClipPlayerComponent.Kind())
}

// Spawn places a prop showing key at parent's position plus dx, dy, one layer
// above the parent. A missing image still spawns an empty prop.
func (s *Stage) Spawn(parent pet.ObjectID, key string, dx, dy float64) (pet.ObjectID, error) {
	pe := ecs.Entity(parent)
	pt, ok := ecs.Get(s.w, pe, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownObject, parent)
	}
	layer := 0
	if l, ok := ecs.Get(s.w, pe, component.RenderLayerComponent.Kind()); ok {
		layer = l.Index
	}

	e := ecs.CreateEntity(s.w)
	sprite := &component.Sprite{}
	if !s.show(sprite, key) {
		s.log.Debug("prop image not loaded", "key", key)
	}
	if err := s.attach(e,
		func() error {
			return ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{X: pt.X + dx, Y: pt.Y + dy, ScaleX: pt.ScaleX, ScaleY: pt.ScaleY})
		},
		func() error { return ecs.Add(s.w, e, component.SpriteComponent.Kind(), sprite) },
		func() error { return ecs.Add(s.w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer + 1}) },
		func() error { return ecs.Add(s.w, e, component.PropTagComponent.Kind(), &component.PropTag{Owner: uint64(pe)}) },
	); err != nil {
		return 0, err
	}
	return pet.ObjectID(e), nil
}

func (s *Stage) Destroy(obj pet.ObjectID) {
	ecs.DestroyEntity(s.w, ecs.Entity(obj))
}

// After runs fn on the tick d has elapsed, from the timer system.
func (s *Stage) After(d time.Duration, fn func()) {
	e := ecs.CreateEntity(s.w)
	_ = ecs.Add(s.w, e, component.TimerComponent.Kind(), &component.Timer{Remaining: d.Seconds(), Fn: fn})
}

// Subscribe registers fn for every clip event delivered by Flush.
func (s *Stage) Subscribe(fn func(pet.ClipEvent)) {
	if fn != nil {
		s.subs = append(s.subs, fn)
	}
}

// Flush drains the world queue and forwards clip events in order.
func (s *Stage) Flush() int {
	n := 0
	for _, evt := range s.w.Events().Drain() {
		data, ok := evt.Data.(system.ClipEventData)
		if !ok {
			continue
		}
		var kind pet.ClipEventKind
		switch evt.Type {
		case system.EventClipRepeat:
			kind = pet.ClipRepeat
		case system.EventClipComplete:
			kind = pet.ClipComplete
		default:
			continue
		}
		ce := pet.ClipEvent{Kind: kind, Object: pet.ObjectID(data.Entity), Playback: pet.Playback(data.Playback), Clip: data.Clip}
		for _, fn := range s.subs {
			fn(ce)
		}
		n++
	}
	return n
}

func (s *Stage) show(sprite *component.Sprite, key string) bool {
	if s.anim != nil {
		return s.anim.Show(sprite, key)
	}
	img, ok := s.images.Image(key)
	if !ok {
		return false
	}
	sprite.Image = img
	sprite.Key = key
	return true
}

func (s *Stage) attach(e ecs.Entity, steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			ecs.DestroyEntity(s.w, e)
			return fmt.Errorf("stage: spawn: %w", err)
		}
	}
	return nil
}
