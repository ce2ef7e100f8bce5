package assets

import (
	"testing"

	"github.com/milk9111/digipet/ecs/render"
)

func TestEmbeddedFrames(t *testing.T) {
	for _, key := range []string{"digimon_1", "digimon_48", "meat_1", "meat_4"} {
		img, err := DecodeImage(render.AssetPath(key))
		if err != nil {
			t.Fatalf("decode %s: %v", key, err)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
			t.Fatalf("%s: unexpected size %v", key, b)
		}
	}

	files, err := List("assets/meat")
	if err != nil || len(files) != 4 {
		t.Fatalf("expected 4 meat frames, got %v %v", files, err)
	}
	if _, err := LoadFile("digimon/digimon_99.png"); err == nil {
		t.Fatalf("expected missing frame error")
	}
}
