package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/digipet/pet"
)

var ErrEmptyClip = errors.New("render: clip has no frames")

// ClipLibrary stores bound clips by key (<species>_<animation>).
type ClipLibrary struct {
	clips map[string]pet.Clip
}

// NewClipLibrary creates an empty library.
func NewClipLibrary() *ClipLibrary {
	return &ClipLibrary{clips: make(map[string]pet.Clip)}
}

// Bind registers clip under key, replacing any previous definition.
func (l *ClipLibrary) Bind(key string, clip pet.Clip) error {
	if key == "" {
		return errors.New("render: empty clip key")
	}
	if len(clip.Frames) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyClip, key)
	}
	clip.Frames = append([]string(nil), clip.Frames...)
	l.clips[key] = clip
	return nil
}

func (l *ClipLibrary) Unbind(key string) {
	delete(l.clips, key)
}

// Clip returns a clip by key.
func (l *ClipLibrary) Clip(key string) (pet.Clip, bool) {
	if l == nil || key == "" {
		return pet.Clip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

func (l *ClipLibrary) Keys() []string {
	keys := make([]string, 0, len(l.clips))
	for k := range l.clips {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
