package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/digipet/pet"
)

func TestAssetPath(t *testing.T) {
	cases := map[string]string{
		"digimon_12": "digimon/digimon_12.png",
		"meat_3":     "meat/meat_3.png",
		"plain":      "plain/plain.png",
	}
	for key, want := range cases {
		if got := AssetPath(key); got != want {
			t.Fatalf("AssetPath(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestLoadImages(t *testing.T) {
	r := NewRegistry()
	var asked []string
	load := func(path string) (*ebiten.Image, error) {
		asked = append(asked, path)
		if path == "meat/meat_9.png" {
			return nil, errors.New("missing")
		}
		return new(ebiten.Image), nil
	}

	n, err := LoadImages(r, []string{"digimon_1", "meat_9", "meat_1"}, load)
	if n != 2 || err == nil {
		t.Fatalf("expected 2 loaded and an error, got %d %v", n, err)
	}
	if _, ok := r.Image("meat_9"); ok {
		t.Fatalf("failed key must not be registered")
	}
	if !slices.Equal(r.Keys(), []string{"digimon_1", "meat_1"}) {
		t.Fatalf("unexpected keys %v", r.Keys())
	}

	asked = nil
	if n, err := LoadImages(r, []string{"digimon_1"}, load); n != 0 || err != nil || len(asked) != 0 {
		t.Fatalf("already registered keys should be skipped, got %d %v %v", n, err, asked)
	}
}

func TestClipLibrary(t *testing.T) {
	l := NewClipLibrary()
	if err := l.Bind("botamon_idle", pet.Clip{}); !errors.Is(err, ErrEmptyClip) {
		t.Fatalf("expected empty clip error, got %v", err)
	}

	frames := []string{"digimon_1", "digimon_2"}
	if err := l.Bind("botamon_idle", pet.Clip{Frames: frames, FrameRate: 5, Repeat: -1}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	frames[0] = "changed"
	clip, ok := l.Clip("botamon_idle")
	if !ok || clip.Frames[0] != "digimon_1" {
		t.Fatalf("library must own its frame slice, got %+v", clip)
	}

	l.Unbind("botamon_idle")
	if _, ok := l.Clip("botamon_idle"); ok || len(l.Keys()) != 0 {
		t.Fatalf("expected clip removed")
	}
}
