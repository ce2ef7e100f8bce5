package system

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
)

const (
	EventClipRepeat   = "clip_repeat"
	EventClipComplete = "clip_complete"
)

// ClipEventData is the payload of clip events on the world queue.
type ClipEventData struct {
	Entity   ecs.Entity
	Clip     string
	Playback uint64
}

// ImageSource resolves frame keys to images.
type ImageSource interface {
	Image(key string) (*ebiten.Image, bool)
}

type AnimationSystem struct {
	images ImageSource
	dt     float64
	log    *slog.Logger
	warned map[string]bool
}

// NewAnimationSystem advances clips by 1/tps seconds per update.
func NewAnimationSystem(images ImageSource, tps int, log *slog.Logger) *AnimationSystem {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnimationSystem{images: images, dt: 1 / float64(tps), log: log, warned: make(map[string]bool)}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.ClipPlayerComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, cp *component.ClipPlayer, sprite *component.Sprite) {
		if !cp.Playing || len(cp.Frames) == 0 || !(cp.FrameRate > 0) {
			return
		}
		step := 1 / cp.FrameRate
		cp.Elapsed += a.dt
		for cp.Playing && cp.Elapsed >= step {
			cp.Elapsed -= step
			a.advance(w, e, cp, sprite)
		}
	})
}

func (a *AnimationSystem) advance(w *ecs.World, e ecs.Entity, cp *component.ClipPlayer, sprite *component.Sprite) {
	next := cp.Frame + 1
	if next >= len(cp.Frames) {
		data := ClipEventData{Entity: e, Clip: cp.Clip, Playback: cp.Playback}
		if cp.Repeat >= 0 && cp.Repeats >= cp.Repeat {
			cp.Playing = false
			cp.Elapsed = 0
			w.Events().Push(ecs.Event{Type: EventClipComplete, Data: data})
			return
		}
		cp.Repeats++
		next = 0
		w.Events().Push(ecs.Event{Type: EventClipRepeat, Data: data})
	}
	cp.Frame = next
	a.Show(sprite, cp.Frames[next])
}

// Show swaps the sprite to key. An unknown key keeps the current image and
// is logged once.
func (a *AnimationSystem) Show(sprite *component.Sprite, key string) bool {
	img, ok := a.images.Image(key)
	if !ok {
		if !a.warned[key] {
			a.warned[key] = true
			a.log.Warn("frame not loaded, keeping previous", "key", key)
		}
		return false
	}
	sprite.Image = img
	sprite.Key = key
	return true
}
