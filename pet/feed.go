package pet

import (
	"errors"
	"fmt"
)

var errNoFoodStages = errors.New("pet: no food stages configured")

// feeding tracks one in-progress feed. The food prop depletes by one stage on
// every loop of the eat clip.
type feeding struct {
	prop      ObjectID
	spawned   bool
	index     int
	playback  Playback
	listening bool
}

// Feed raises hunger and plays the eat sequence with a depleting food prop. It
// returns false without touching anything while a feed or evolution is running.
func (p *Pet) Feed() (accepted bool) {
	if !p.transition(StateFeeding) {
		p.log.Debug("feed ignored", "state", p.state)
		return false
	}
	p.data.status.Feed()
	accepted = true

	f := &feeding{}
	p.feed = f
	defer p.recoverFeed()

	if err := p.startFeed(f); err != nil {
		p.log.Error("feeding failed", "err", err)
		p.abortFeed()
	}
	return accepted
}

func (p *Pet) startFeed(f *feeding) error {
	stages := p.cfg.Feeding.Stages
	if len(stages) == 0 {
		return errNoFoodStages
	}

	prop, err := p.engine.Spawn(p.body, FoodKey(stages[0]), p.cfg.Feeding.OffsetX, p.cfg.Feeding.OffsetY)
	if err != nil {
		return fmt.Errorf("pet: spawn food: %w", err)
	}
	f.prop = prop
	f.spawned = true

	opts := PlayOptions{FrameRate: p.cfg.Feeding.FrameRate, Repeat: -1}
	if err := p.anim.Play(AnimEat, p.data.species, opts); err != nil {
		return fmt.Errorf("pet: start eat: %w", err)
	}
	f.playback = p.anim.Playback()
	f.listening = true
	return nil
}

// feedStep handles one loop of the eat clip.
func (p *Pet) feedStep() {
	defer p.recoverFeed()

	f := p.feed
	stages := p.cfg.Feeding.Stages
	f.index++
	if f.index >= len(stages) {
		p.finishFeed()
		return
	}

	key := FoodKey(stages[f.index])
	if err := p.engine.SetImage(f.prop, key); err != nil {
		if errors.Is(err, ErrRenderResourceMissing) {
			logImageError(p.log, key, err)
			return
		}
		p.log.Error("feeding failed", "err", err)
		p.abortFeed()
	}
}

// finishFeed ends a feed that consumed every stage.
func (p *Pet) finishFeed() {
	p.cleanupFeed()
	_ = p.anim.PlayIdle(p.data.species)
	p.transition(StateIdle)
}

// abortFeed is the failure path: the prop goes away, the listener is detached
// and the pet accepts feeds again.
func (p *Pet) abortFeed() {
	p.cleanupFeed()
	if name, _ := p.anim.Current(); name == AnimEat {
		_ = p.anim.PlayIdle(p.data.species)
	}
	if p.state == StateFeeding {
		p.transition(StateIdle)
	}
}

func (p *Pet) cleanupFeed() {
	f := p.feed
	if f == nil {
		return
	}
	p.feed = nil
	f.listening = false
	if f.spawned {
		f.spawned = false
		p.engine.Destroy(f.prop)
	}
}

func (p *Pet) recoverFeed() {
	r := recover()
	if r == nil {
		return
	}
	p.log.Error("feeding panicked", "panic", r)
	func() {
		// A second panic during cleanup must not leave the pet busy.
		defer func() {
			if recover() != nil {
				p.feed = nil
				p.state = StateIdle
			}
		}()
		p.abortFeed()
	}()
}

// FoodStage returns the current food depletion index while feeding.
func (p *Pet) FoodStage() (int, bool) {
	if p.feed == nil {
		return 0, false
	}
	return p.feed.index, true
}

// Busy reports whether a feed is in progress.
func (p *Pet) Busy() bool {
	return p.state != StateIdle
}
