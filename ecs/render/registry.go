package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// Registry holds decoded images by key (digimon_12, meat_3, ...).
type Registry struct {
	images map[string]*ebiten.Image
}

func NewRegistry() *Registry {
	return &Registry{images: make(map[string]*ebiten.Image)}
}

// Register stores an image by key.
func (r *Registry) Register(key string, img *ebiten.Image) {
	if r == nil || key == "" || img == nil {
		return
	}
	r.images[key] = img
}

// Image returns a registered image by key.
func (r *Registry) Image(key string) (*ebiten.Image, bool) {
	if r == nil || key == "" {
		return nil, false
	}
	img, ok := r.images[key]
	return img, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.images)
}

func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.images))
	for k := range r.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
