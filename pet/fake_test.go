package pet

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"
)

type fakeEngine struct {
	clips    map[string]Clip
	binds    []string
	unbinds  []string
	images   map[ObjectID]string
	missing  map[string]bool
	playing  map[ObjectID]string
	spawned  map[ObjectID]string
	destroys []ObjectID
	timers   []func()

	nextPlayback Playback
	nextObject   ObjectID

	spawnErr   error
	playErr    error
	spawnPanic bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		clips:      map[string]Clip{},
		images:     map[ObjectID]string{},
		missing:    map[string]bool{},
		playing:    map[ObjectID]string{},
		spawned:    map[ObjectID]string{},
		nextObject: 100,
	}
}

func (f *fakeEngine) BindClip(key string, clip Clip) error {
	f.clips[key] = clip
	f.binds = append(f.binds, key)
	return nil
}

func (f *fakeEngine) UnbindClip(key string) {
	delete(f.clips, key)
	f.unbinds = append(f.unbinds, key)
}

func (f *fakeEngine) SetImage(obj ObjectID, key string) error {
	if f.missing[key] {
		return fmt.Errorf("fake: %s: %w", key, ErrRenderResourceMissing)
	}
	f.images[obj] = key
	return nil
}

func (f *fakeEngine) PlayClip(obj ObjectID, key string) (Playback, error) {
	if f.playErr != nil {
		return 0, f.playErr
	}
	if _, ok := f.clips[key]; !ok {
		return 0, fmt.Errorf("fake: clip %s not bound", key)
	}
	f.nextPlayback++
	f.playing[obj] = key
	return f.nextPlayback, nil
}

func (f *fakeEngine) StopClip(obj ObjectID) {
	delete(f.playing, obj)
}

func (f *fakeEngine) Spawn(parent ObjectID, key string, dx, dy float64) (ObjectID, error) {
	if f.spawnPanic {
		panic("fake: spawn exploded")
	}
	if f.spawnErr != nil {
		return 0, f.spawnErr
	}
	f.nextObject++
	f.spawned[f.nextObject] = key
	f.images[f.nextObject] = key
	return f.nextObject, nil
}

func (f *fakeEngine) Destroy(obj ObjectID) {
	delete(f.spawned, obj)
	delete(f.images, obj)
	f.destroys = append(f.destroys, obj)
}

func (f *fakeEngine) After(d time.Duration, fn func()) {
	f.timers = append(f.timers, fn)
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

const testBody ObjectID = 1

func testCatalog() *Catalog {
	return NewCatalog(
		[]Species{
			{ID: "botamon", StartFrame: 1},
			{ID: "koromon", StartFrame: 13},
			{ID: "agumon", StartFrame: 25},
		},
		map[string][]int{
			"idle":  {1, 2},
			"eat":   {3, 4},
			"happy": {5, 6, 5},
		},
	)
}

func testChain(c *Catalog) *Chain {
	chain, err := NewChain(c, []Edge{
		{From: "botamon", To: "koromon", Thresholds: Thresholds{Age: 10, Hunger: 50, Training: 10}},
		{From: "koromon", To: "agumon", Thresholds: Thresholds{Age: 60, Hunger: 70, Strength: 10}},
	})
	if err != nil {
		panic(err)
	}
	return chain
}

func testData() Data {
	c := testCatalog()
	return Data{Catalog: c, Chain: testChain(c), Start: "botamon"}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func newTestPet(opts ...Option) (*Pet, *fakeEngine, *fakeClock) {
	eng := newFakeEngine()
	clock := newFakeClock()
	base := []Option{WithLogger(discardLogger()), WithClock(clock.Now)}
	p, err := New(eng, testBody, testData(), append(base, opts...)...)
	if err != nil {
		panic(err)
	}
	return p, eng, clock
}
