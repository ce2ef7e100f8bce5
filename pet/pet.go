// Package pet implements the virtual pet: its status rules, sprite animation
// player, feeding sequence and evolution chain. Rendering is delegated to an
// Engine; engine callbacks are queued and drained once per Update.
package pet

import (
	"fmt"
	"log/slog"
	"time"
)

// State is the coarse activity of a pet.
type State int

const (
	StateIdle State = iota
	StateFeeding
	StateEvolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFeeding:
		return "feeding"
	case StateEvolving:
		return "evolving"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateIdle:     {StateFeeding, StateEvolving},
	StateFeeding:  {StateIdle},
	StateEvolving: {StateIdle},
}

// NoticeKind identifies a gameplay notification.
type NoticeKind int

const (
	NoticeStarving NoticeKind = iota + 1
	NoticeEvolved
)

// Notice is raised to the optional notice handler.
type Notice struct {
	Kind NoticeKind
	From string
	To   string
}

// StatusRule adjusts the status periodically. Returned age and training are
// ignored; other fields go through the clamping setters.
type StatusRule interface {
	Apply(s Status) (Status, error)
}

// Data is the static data a pet runs on.
type Data struct {
	Catalog *Catalog
	Chain   *Chain
	Start   string
}

// FeedConfig tunes the feeding sequence.
type FeedConfig struct {
	Stages    []int
	FrameRate float64
	OffsetX   float64
	OffsetY   float64
}

// Config holds the pet tunables.
type Config struct {
	Status       StatusConfig
	Idle         PlayOptions
	Feeding      FeedConfig
	RuleInterval time.Duration
}

// DefaultConfig returns the shipped tunables.
func DefaultConfig() Config {
	return Config{
		Status: DefaultStatusConfig(),
		Idle:   PlayOptions{FrameRate: DefaultFrameRate, Repeat: -1},
		Feeding: FeedConfig{
			Stages:    []int{1, 2, 3, 4},
			FrameRate: 4,
			OffsetX:   -48,
			OffsetY:   16,
		},
		RuleInterval: time.Second,
	}
}

// Option configures a Pet.
type Option func(*Pet)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pet) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock replaces time.Now as the source of real elapsed time.
func WithClock(now func() time.Time) Option {
	return func(p *Pet) {
		if now != nil {
			p.now = now
		}
	}
}

func WithConfig(cfg Config) Option {
	return func(p *Pet) { p.cfg = cfg }
}

func WithRules(rules ...StatusRule) Option {
	return func(p *Pet) { p.rules = append(p.rules, rules...) }
}

func WithNoticeHandler(fn func(Notice)) Option {
	return func(p *Pet) { p.onNotice = fn }
}

// shared is the status and identity block owned by Pet. Subordinates keep a
// pointer to it but never outlive the pet.
type shared struct {
	status  *StatusModel
	species string
	catalog *Catalog
	chain   *Chain
}

// Pet is the composition root driven by the game loop.
type Pet struct {
	engine Engine
	body   ObjectID
	cfg    Config
	log    *slog.Logger
	now    func() time.Time

	data  shared
	anim  *AnimationPlayer
	evo   *EvolutionController
	state State
	queue eventQueue
	feed  *feeding

	last        time.Time
	ruleElapsed time.Duration
	rules       []StatusRule
	onNotice    func(Notice)
}

// New creates a pet bound to the body object and starts its idle animation.
func New(engine Engine, body ObjectID, data Data, opts ...Option) (*Pet, error) {
	if engine == nil {
		return nil, fmt.Errorf("pet: nil engine")
	}
	if err := validateData(data); err != nil {
		return nil, err
	}

	p := &Pet{
		engine: engine,
		body:   body,
		cfg:    DefaultConfig(),
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.data = shared{
		status:  NewStatusModel(p.cfg.Status),
		species: data.Start,
		catalog: data.Catalog,
		chain:   data.Chain,
	}
	p.anim = newAnimationPlayer(engine, body, &p.data, p.cfg.Idle, p.log)
	p.evo = newEvolutionController(&p.data, p.anim, engine, body, p.log)
	p.last = p.now()

	_ = p.anim.PlayIdle(p.data.species)
	return p, nil
}

func validateData(data Data) error {
	if data.Catalog == nil {
		return fmt.Errorf("pet: nil catalog")
	}
	if _, err := data.Catalog.Species(data.Start); err != nil {
		return fmt.Errorf("pet: start species: %w", err)
	}
	return nil
}

// Notify queues an engine notification for the next Update.
func (p *Pet) Notify(ev ClipEvent) {
	p.queue.Push(ev)
}

// Update drains queued engine events, then advances the status by the real time
// elapsed since the previous update and checks for evolution.
func (p *Pet) Update(now time.Time) {
	p.drain()

	elapsed := now.Sub(p.last)
	if elapsed < 0 {
		elapsed = 0
	} else {
		p.last = now
	}

	if p.data.status.Tick(elapsed.Seconds()) {
		p.log.Info("starving", "species", p.data.species)
		p.notify(Notice{Kind: NoticeStarving, From: p.data.species})
	}
	p.applyRules(elapsed)

	if p.state != StateIdle {
		return
	}
	edge, ok := p.evo.Ready()
	if !ok || !p.transition(StateEvolving) {
		return
	}
	p.evo.Evolve(edge)
	p.transition(StateIdle)
	p.notify(Notice{Kind: NoticeEvolved, From: edge.From, To: edge.To})
}

func (p *Pet) drain() {
	for _, ev := range p.queue.Drain() {
		if ev.Object != p.body {
			continue
		}
		switch ev.Kind {
		case ClipRepeat:
			if p.feed != nil && p.feed.listening && ev.Playback == p.feed.playback {
				p.feedStep()
			}
		case ClipComplete:
			if p.feed != nil && ev.Playback == p.feed.playback {
				p.finishFeed()
				continue
			}
			p.anim.HandleComplete(ev.Playback)
		}
	}
}

func (p *Pet) applyRules(elapsed time.Duration) {
	if len(p.rules) == 0 || p.cfg.RuleInterval <= 0 {
		return
	}
	p.ruleElapsed += elapsed
	for p.ruleElapsed >= p.cfg.RuleInterval {
		p.ruleElapsed -= p.cfg.RuleInterval
		for _, r := range p.rules {
			next, err := r.Apply(p.data.status.Snapshot())
			if err != nil {
				p.log.Warn("status rule failed", "err", err)
				continue
			}
			p.data.status.SetHunger(next.Hunger)
			p.data.status.SetStrength(next.Strength)
			p.data.status.SetHappiness(next.Happiness)
			p.data.status.SetSleeping(next.Sleeping)
		}
	}
}

func (p *Pet) transition(to State) bool {
	for _, allowed := range transitions[p.state] {
		if allowed == to {
			p.log.Debug("state", "from", p.state, "to", to)
			p.state = to
			return true
		}
	}
	return false
}

func (p *Pet) notify(n Notice) {
	if p.onNotice != nil {
		p.onNotice(n)
	}
}

// Train applies one training action.
func (p *Pet) Train() {
	p.data.status.Train()
}

// Reload swaps the static data. Materialized clips are discarded and an
// in-progress feed is cleaned up; the current species must exist in the new data.
func (p *Pet) Reload(data Data) error {
	if data.Catalog == nil {
		return fmt.Errorf("pet: nil catalog")
	}
	if _, err := data.Catalog.Species(p.data.species); err != nil {
		return fmt.Errorf("pet: reload: %w", err)
	}
	if p.feed != nil {
		p.abortFeed()
	}
	p.anim.Forget()
	p.data.catalog = data.Catalog
	p.data.chain = data.Chain
	return p.anim.PlayIdle(p.data.species)
}

// Play starts an animation for the current species. It fails with ErrBusy
// unless the pet is idle, since feeding tracks its own eat playback.
func (p *Pet) Play(name string, opts PlayOptions) error {
	if p.state != StateIdle {
		return fmt.Errorf("pet: play %s while %s: %w", name, p.state, ErrBusy)
	}
	return p.anim.Play(name, p.data.species, opts)
}

// Status returns a copy of the status block.
func (p *Pet) Status() Status { return p.data.status.Snapshot() }

func (p *Pet) Species() string { return p.data.species }

func (p *Pet) State() State { return p.state }

// Animation returns the name of the playing animation.
func (p *Pet) Animation() string {
	name, _ := p.anim.Current()
	return name
}

func (p *Pet) Body() ObjectID { return p.body }

// eventQueue is a FIFO drained once per Update.
type eventQueue struct {
	items []ClipEvent
}

func (q *eventQueue) Push(ev ClipEvent) {
	q.items = append(q.items, ev)
}

func (q *eventQueue) Drain() []ClipEvent {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
