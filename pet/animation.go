package pet

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	// DefaultFrameRate is used when a play request carries no positive rate.
	DefaultFrameRate = 5

	AnimIdle = "idle"
	AnimEat  = "eat"
)

// PlayOptions controls the rate and repeat policy of a materialized clip.
type PlayOptions struct {
	FrameRate float64
	Repeat    int
}

func (o PlayOptions) normalized() PlayOptions {
	if !(o.FrameRate > 0) {
		o.FrameRate = DefaultFrameRate
	}
	if o.Repeat < -1 {
		o.Repeat = -1
	}
	return o
}

// AnimationPlayer maps animation names onto frame clips for the body object.
type AnimationPlayer struct {
	engine Engine
	body   ObjectID
	data   *shared
	log    *slog.Logger
	idle   PlayOptions

	clips    map[string]PlayOptions
	current  string
	species  string
	playback Playback
}

func newAnimationPlayer(engine Engine, body ObjectID, data *shared, idle PlayOptions, log *slog.Logger) *AnimationPlayer {
	return &AnimationPlayer{
		engine: engine,
		body:   body,
		data:   data,
		log:    log,
		idle:   idle.normalized(),
		clips:  make(map[string]PlayOptions),
	}
}

// Play starts animation name for speciesID on the body. Lookup failures are
// logged and leave the player untouched.
func (a *AnimationPlayer) Play(name, speciesID string, opts PlayOptions) error {
	opts = opts.normalized()

	frames, err := a.data.catalog.FrameKeys(speciesID, name)
	if err != nil {
		a.log.Error("animation lookup failed", "animation", name, "species", speciesID, "err", err)
		return err
	}

	key := ClipKey(speciesID, name)
	if prev, ok := a.clips[key]; !ok || prev != opts {
		if ok {
			a.engine.UnbindClip(key)
			delete(a.clips, key)
		}
		clip := Clip{Frames: frames, FrameRate: opts.FrameRate, Repeat: opts.Repeat}
		if err := a.engine.BindClip(key, clip); err != nil {
			a.log.Error("bind clip failed", "clip", key, "err", err)
			return fmt.Errorf("pet: bind clip %s: %w", key, err)
		}
		a.clips[key] = opts
	}

	// Show the first frame now so the previous clip does not linger for a frame.
	if err := a.engine.SetImage(a.body, frames[0]); err != nil {
		logImageError(a.log, frames[0], err)
	}

	pb, err := a.engine.PlayClip(a.body, key)
	if err != nil {
		a.log.Error("play clip failed", "clip", key, "err", err)
		return fmt.Errorf("pet: play clip %s: %w", key, err)
	}

	a.current = name
	a.species = speciesID
	a.playback = pb
	a.log.Debug("animation started", "clip", key, "fps", opts.FrameRate, "repeat", opts.Repeat)
	return nil
}

// PlayIdle plays the idle animation of speciesID with the configured idle options.
func (a *AnimationPlayer) PlayIdle(speciesID string) error {
	return a.Play(AnimIdle, speciesID, a.idle)
}

// HandleComplete returns the body to idle when the current playback finished.
// It reports whether the event belonged to the current playback.
func (a *AnimationPlayer) HandleComplete(pb Playback) bool {
	if a.current == "" || pb != a.playback {
		return false
	}
	_ = a.PlayIdle(a.species)
	return true
}

// Stop halts the body clip.
func (a *AnimationPlayer) Stop() {
	a.engine.StopClip(a.body)
	a.current = ""
	a.playback = 0
}

// Forget unbinds every materialized clip so the next Play rebuilds from fresh data.
func (a *AnimationPlayer) Forget() {
	for key := range a.clips {
		a.engine.UnbindClip(key)
	}
	clear(a.clips)
}

// Current returns the playing animation name and species.
func (a *AnimationPlayer) Current() (string, string) {
	return a.current, a.species
}

// Playback returns the token of the current playback.
func (a *AnimationPlayer) Playback() Playback {
	return a.playback
}

// Materialized reports whether the clip for speciesID/name is bound.
func (a *AnimationPlayer) Materialized(speciesID, name string) bool {
	_, ok := a.clips[ClipKey(speciesID, name)]
	return ok
}

func logImageError(log *slog.Logger, key string, err error) {
	if errors.Is(err, ErrRenderResourceMissing) {
		log.Warn("frame not loaded, keeping previous", "image", key)
		return
	}
	log.Warn("set image failed", "image", key, "err", err)
}
