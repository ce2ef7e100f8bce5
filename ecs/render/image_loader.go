package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loader decodes the image stored at an assets-relative path.
type Loader func(path string) (*ebiten.Image, error)

// AssetPath maps an image key to its file: digimon_12 -> digimon/digimon_12.png.
func AssetPath(key string) string {
	dir := key
	if i := strings.LastIndexByte(key, '_'); i > 0 {
		dir = key[:i]
	}
	return dir + "/" + key + ".png"
}

// LoadImages registers every key that load can decode and returns how many
// were registered. Keys already present are skipped. Failures are joined into
// the returned error; callers usually log it and keep going since a missing
// frame only means the previous image stays on screen.
func LoadImages(r *Registry, keys []string, load Loader) (int, error) {
	if r == nil || load == nil {
		return 0, errors.New("render: nil registry or loader")
	}
	var errs []error
	loaded := 0
	for _, key := range keys {
		if _, ok := r.Image(key); ok {
			continue
		}
		img, err := load(AssetPath(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("render: load %s: %w", key, err))
			continue
		}
		r.Register(key, img)
		loaded++
	}
	return loaded, errors.Join(errs...)
}
