package pet

import "time"

// ObjectID identifies a visual object owned by the engine.
type ObjectID uint64

// Playback identifies one start of a clip on an object. Engines hand out a fresh
// value for every PlayClip call so stale notifications can be told apart.
type Playback uint64

// Clip is an ordered list of frame images with a rate and repeat policy.
// Repeat 0 plays once, -1 loops forever and N > 0 loops N extra times.
type Clip struct {
	Frames    []string
	FrameRate float64
	Repeat    int
}

// ClipEventKind identifies a clip notification.
type ClipEventKind int

const (
	ClipRepeat ClipEventKind = iota + 1
	ClipComplete
)

func (k ClipEventKind) String() string {
	switch k {
	case ClipRepeat:
		return "repeat"
	case ClipComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ClipEvent is delivered by the engine when a playing clip loops or finishes.
type ClipEvent struct {
	Kind     ClipEventKind
	Object   ObjectID
	Playback Playback
	Clip     string
}

// Engine is the rendering collaborator the pet drives.
type Engine interface {
	BindClip(key string, clip Clip) error
	UnbindClip(key string)
	SetImage(obj ObjectID, key string) error
	PlayClip(obj ObjectID, key string) (Playback, error)
	StopClip(obj ObjectID)
	Spawn(parent ObjectID, key string, dx, dy float64) (ObjectID, error)
	Destroy(obj ObjectID)
	After(d time.Duration, fn func())
}
