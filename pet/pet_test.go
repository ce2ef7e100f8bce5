package pet

import (
	"errors"
	"testing"
	"time"
)

func TestNewValidatesData(t *testing.T) {
	eng := newFakeEngine()
	if _, err := New(nil, testBody, testData()); err == nil {
		t.Fatalf("expected error for nil engine")
	}
	if _, err := New(eng, testBody, Data{Start: "botamon"}); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
	data := testData()
	data.Start = "gabumon"
	if _, err := New(eng, testBody, data, WithLogger(discardLogger())); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected lookup error for unknown start species, got %v", err)
	}
}

func TestNewStartsIdle(t *testing.T) {
	p, eng, _ := newTestPet()
	if p.State() != StateIdle || p.Animation() != AnimIdle {
		t.Fatalf("expected idle pet, got %s/%s", p.State(), p.Animation())
	}
	if eng.playing[testBody] != "botamon_idle" || eng.images[testBody] != "digimon_1" {
		t.Fatalf("expected botamon idle on body, got %s / %s", eng.playing[testBody], eng.images[testBody])
	}
	if p.Body() != testBody {
		t.Fatalf("unexpected body %d", p.Body())
	}
}

func TestUpdateUsesWallClock(t *testing.T) {
	p, _, clock := newTestPet()

	// Many updates at the same instant do not age the pet.
	for i := 0; i < 60; i++ {
		p.Update(clock.Now())
	}
	if s := p.Status(); s.Age != 0 || s.Hunger != 100 {
		t.Fatalf("expected no change without elapsed time, got %+v", s)
	}

	// One late update after a long pause catches up fully.
	p.Update(clock.Advance(30 * time.Second))
	if s := p.Status(); s.Age != 30 || s.Hunger != 70 {
		t.Fatalf("expected catch-up to age 30 hunger 70, got %+v", s)
	}

	// A clock stepping backwards is ignored.
	p.Update(clock.Advance(-10 * time.Second))
	if s := p.Status(); s.Age != 30 {
		t.Fatalf("age must not go backwards, got %v", s.Age)
	}
	p.Update(clock.Advance(15 * time.Second))
	if s := p.Status(); s.Age != 35 {
		t.Fatalf("expected age 35 measured from the last accepted instant, got %v", s.Age)
	}
}

func TestUpdateRaisesStarvingOnce(t *testing.T) {
	var notices []Notice
	p, _, clock := newTestPet(WithNoticeHandler(func(n Notice) { notices = append(notices, n) }))

	p.Update(clock.Advance(200 * time.Second))
	p.Update(clock.Advance(time.Second))
	p.Update(clock.Advance(time.Second))

	starving := 0
	for _, n := range notices {
		if n.Kind == NoticeStarving {
			starving++
		}
	}
	if starving != 1 {
		t.Fatalf("expected one starving notice, got %d (%+v)", starving, notices)
	}
}

type ruleFunc func(Status) (Status, error)

func (f ruleFunc) Apply(s Status) (Status, error) { return f(s) }

func TestStatusRulesRunOnInterval(t *testing.T) {
	calls := 0
	sad := ruleFunc(func(s Status) (Status, error) {
		calls++
		s.Happiness -= 10
		s.Age = 0
		s.Training = 99
		return s, nil
	})
	broken := ruleFunc(func(s Status) (Status, error) {
		return Status{}, errors.New("boom")
	})
	p, _, clock := newTestPet(WithRules(broken, sad))

	p.Update(clock.Advance(500 * time.Millisecond))
	if calls != 0 {
		t.Fatalf("rule ran before the interval elapsed")
	}
	p.Update(clock.Advance(2500 * time.Millisecond))
	if calls != 3 {
		t.Fatalf("expected 3 rule runs after 3s, got %d", calls)
	}

	s := p.Status()
	if s.Happiness != 20 {
		t.Fatalf("expected happiness 20, got %v", s.Happiness)
	}
	if s.Age != 3 || s.Training != 0 {
		t.Fatalf("rules must not touch age or training: %+v", s)
	}

	for i := 0; i < 5; i++ {
		p.Update(clock.Advance(time.Second))
	}
	if got := p.Status().Happiness; got != 0 {
		t.Fatalf("happiness must clamp at 0, got %v", got)
	}
}

func TestCompletionEventReturnsToIdle(t *testing.T) {
	p, eng, clock := newTestPet()
	if err := p.Play("happy", PlayOptions{Repeat: 0}); err != nil {
		t.Fatalf("play: %v", err)
	}
	pb := eng.nextPlayback

	p.Notify(ClipEvent{Kind: ClipComplete, Object: testBody, Playback: pb})
	p.Update(clock.Now())
	if p.Animation() != AnimIdle {
		t.Fatalf("expected idle after completion, got %s", p.Animation())
	}
}

func TestStaleCompletionAfterEvolutionIgnored(t *testing.T) {
	p, eng, clock := newTestPet()
	_ = p.Play("happy", PlayOptions{Repeat: 0})
	stale := eng.nextPlayback

	for i := 0; i < 10; i++ {
		p.Train()
	}
	p.Update(clock.Advance(12 * time.Second))
	if p.Species() != "koromon" {
		t.Fatalf("expected evolution, got %s", p.Species())
	}
	binds := len(eng.binds)
	current := eng.nextPlayback

	p.Notify(ClipEvent{Kind: ClipComplete, Object: testBody, Playback: stale})
	p.Update(clock.Now())
	if eng.nextPlayback != current || len(eng.binds) != binds {
		t.Fatalf("stale completion restarted playback")
	}
}

func TestReloadRequiresCurrentSpecies(t *testing.T) {
	p, eng, _ := newTestPet()

	c := NewCatalog([]Species{{ID: "koromon", StartFrame: 13}}, map[string][]int{"idle": {1}})
	if err := p.Reload(Data{Catalog: c}); !errors.Is(err, ErrLookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if p.Species() != "botamon" || eng.playing[testBody] != "botamon_idle" {
		t.Fatalf("failed reload must keep the old data")
	}

	c = NewCatalog([]Species{{ID: "botamon", StartFrame: 40}}, map[string][]int{"idle": {2, 3}})
	if err := p.Reload(Data{Catalog: c}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if eng.images[testBody] != "digimon_41" {
		t.Fatalf("expected rebuilt idle from new data, got %s", eng.images[testBody])
	}
	if clip := eng.clips["botamon_idle"]; len(clip.Frames) != 2 || clip.Frames[1] != "digimon_42" {
		t.Fatalf("unexpected rebuilt clip %+v", clip)
	}
}

func TestStateStrings(t *testing.T) {
	if StateIdle.String() != "idle" || StateFeeding.String() != "feeding" || StateEvolving.String() != "evolving" {
		t.Fatalf("unexpected state names")
	}
	if ClipRepeat.String() != "repeat" || ClipComplete.String() != "complete" {
		t.Fatalf("unexpected clip event names")
	}
}
