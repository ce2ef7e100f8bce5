package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/digipet/assets"
	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
	"github.com/milk9111/digipet/ecs/render"
	"github.com/milk9111/digipet/ecs/stage"
	"github.com/milk9111/digipet/ecs/system"
	"github.com/milk9111/digipet/pet"
	"github.com/milk9111/digipet/prefabs"
	"github.com/milk9111/digipet/script"
	"github.com/milk9111/digipet/telemetry"
)

type action int

const (
	actionFeed action = iota + 1
	actionTrain
	actionPause
)

// Options configures NewGame. Zero values pick the real window, keyboard,
// clock and embedded assets.
type Options struct {
	Debug     bool
	Watch     bool
	TracePath string
	Log       *slog.Logger
	Load      render.Loader
	Input     func() component.Input
	Now       func() time.Time
}

type Game struct {
	log   *slog.Logger
	debug bool

	bundle   prefabs.Bundle
	images   *render.Registry
	load     render.Loader
	world    *ecs.World
	sched    *ecs.Scheduler
	stage    *stage.Stage
	renderer *system.RenderSystem
	pet      *pet.Pet

	hud      *HUD
	controls *ebitenui.UI
	pauseUI  *ebitenui.UI
	width    int
	height   int

	actions   []action
	notice    string
	noticeSeq int

	wall      func() time.Time
	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration
	quit      bool

	watcher       *prefabs.Watcher
	reloadPending bool
	trace         *telemetry.Recorder
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		log:   opts.Log,
		debug: opts.Debug,
		load:  opts.Load,
		wall:  opts.Now,
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.load == nil {
		g.load = assets.LoadImage
	}
	if g.wall == nil {
		g.wall = time.Now
	}

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		return nil, err
	}
	g.bundle = bundle
	g.width, g.height = bundle.Pet.Display.Width, bundle.Pet.Display.Height
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height = 320, 240
	}

	g.images = render.NewRegistry()
	g.preload()

	tps := ebiten.TPS()
	anim := system.NewAnimationSystem(g.images, tps, g.log)
	input := system.NewInputSystem()
	if opts.Input != nil {
		input = system.NewInputSystemFrom(opts.Input)
	}
	g.world = ecs.NewWorld()
	g.sched = ecs.NewScheduler(input, anim, system.NewTimerSystem(tps))
	g.stage = stage.New(g.world, g.images, anim, g.log)
	g.renderer = system.NewRenderSystem()

	display := bundle.Pet.Display
	scale := display.Scale
	if scale <= 0 {
		scale = 1
	}
	body, err := g.stage.SpawnBody(firstFrame(bundle.Data), display.BodyX, display.BodyY, scale)
	if err != nil {
		return nil, err
	}
	if err := ecs.Add(g.world, ecs.Entity(body), component.InputComponent.Kind(), &component.Input{}); err != nil {
		return nil, err
	}

	petOpts := []pet.Option{
		pet.WithLogger(g.log),
		pet.WithConfig(bundle.Config),
		pet.WithClock(g.now),
		pet.WithNoticeHandler(g.onNotice),
	}
	if len(bundle.Script) > 0 {
		rule, err := script.NewRule(bundle.Pet.Rules.Script, bundle.Script)
		if err != nil {
			return nil, err
		}
		petOpts = append(petOpts, pet.WithRules(rule))
	}
	p, err := pet.New(g.stage, body, bundle.Data, petOpts...)
	if err != nil {
		return nil, err
	}
	g.pet = p
	g.stage.Subscribe(p.Notify)

	g.hud = NewHUD(bundle.Pet.HUD)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			g.log.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	trace, err := telemetry.Create(opts.TracePath, time.Second)
	if err != nil {
		return nil, err
	}
	g.trace = trace
	g.record("start")

	return g, nil
}

func firstFrame(data pet.Data) string {
	if keys, err := data.Catalog.FrameKeys(data.Start, pet.AnimIdle); err == nil {
		return keys[0]
	}
	sp, _ := data.Catalog.Species(data.Start)
	return pet.FrameKey(sp.StartFrame)
}

func (g *Game) preload() {
	keys := prefabs.ImageKeys(g.bundle.Pet.Display.Frames, g.bundle.Config.Feeding.Stages)
	n, err := render.LoadImages(g.images, keys, g.load)
	if err != nil {
		g.log.Warn("some images failed to load", "err", err)
	}
	g.log.Debug("images loaded", "count", n, "total", g.images.Len())
}

// now is the game clock: wall time minus time spent paused.
func (g *Game) now() time.Time {
	return g.wall().Add(-g.pausedFor)
}

func (g *Game) queue(a action) {
	g.actions = append(g.actions, a)
}

// ensureUI builds the widget trees on the first frame, once ebiten is running.
func (g *Game) ensureUI() {
	if g.controls == nil {
		g.controls = NewControlsUI(g)
	}
	if g.pauseUI == nil {
		g.pauseUI = NewPauseUI(g)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.ensureUI()
	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.resume()
		}
		g.pauseUI.Update()
		if !g.paused {
			g.resume()
		}
		return nil
	}

	g.controls.Update()
	g.step()
	return nil
}

// step advances one tick: systems, queued actions, clip events, then the pet.
func (g *Game) step() {
	g.sched.Update(g.world)
	if in, ok := ecs.Get(g.world, ecs.Entity(g.pet.Body()), component.InputComponent.Kind()); ok {
		if in.Feed {
			g.queue(actionFeed)
		}
		if in.Train {
			g.queue(actionTrain)
		}
		if in.Pause {
			g.queue(actionPause)
		}
	}

	actions := g.actions
	g.actions = nil
	for _, a := range actions {
		g.apply(a)
	}

	g.stage.Flush()
	now := g.now()
	g.pet.Update(now)
	g.pollWatcher()

	if err := g.trace.Observe(now, g.pet, ""); err != nil {
		g.log.Warn("trace write failed", "err", err)
	}
}

func (g *Game) apply(a action) {
	switch a {
	case actionFeed:
		if !g.pet.Feed() {
			g.showNotice("busy eating")
			return
		}
		g.record("feed")
	case actionTrain:
		g.pet.Train()
		if g.pet.State() == pet.StateIdle {
			if err := g.pet.Play("train", pet.PlayOptions{Repeat: 0}); err != nil {
				g.log.Debug("no train animation", "err", err)
			}
		}
		g.record("train")
	case actionPause:
		g.pause()
	}
}

func (g *Game) pause() {
	if g.paused {
		return
	}
	g.paused = true
	g.pausedAt = g.wall()
}

func (g *Game) resume() {
	if g.pausedAt.IsZero() {
		g.paused = false
		return
	}
	g.pausedFor += g.wall().Sub(g.pausedAt)
	g.pausedAt = time.Time{}
	g.paused = false
}

func (g *Game) onNotice(n pet.Notice) {
	switch n.Kind {
	case pet.NoticeStarving:
		g.showNotice(fmt.Sprintf("%s is starving!", g.pet.Species()))
		g.record("starving")
	case pet.NoticeEvolved:
		g.showNotice(fmt.Sprintf("%s evolved into %s!", n.From, n.To))
		g.record("evolved")
	}
}

// showNotice displays msg until the notice timeout passes or another notice
// replaces it.
func (g *Game) showNotice(msg string) {
	g.notice = msg
	g.noticeSeq++
	seq := g.noticeSeq

	secs := g.bundle.Pet.HUD.Notice
	if secs <= 0 {
		secs = 3
	}
	g.stage.After(time.Duration(secs*float64(time.Second)), func() {
		if g.noticeSeq == seq {
			g.notice = ""
		}
	})
}

func (g *Game) record(event string) {
	if g.pet == nil {
		return
	}
	if err := g.trace.Observe(g.now(), g.pet, event); err != nil {
		g.log.Warn("trace write failed", "err", err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info("data changed", "file", name)
			g.reloadPending = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("watch error", "err", err)
			}
		default:
			if g.reloadPending {
				g.reloadPending = false
				g.Reload()
			}
			return
		}
	}
}

// Reload re-reads prefabs and swaps the pet's catalog and chain. Tunables in
// pet.yaml other than the HUD apply on the next start.
func (g *Game) Reload() {
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		g.log.Error("reload failed", "err", err)
		g.showNotice("reload failed")
		return
	}
	if err := g.pet.Reload(bundle.Data); err != nil {
		g.log.Error("reload rejected", "err", err)
		g.showNotice("reload rejected")
		return
	}
	g.bundle.Data = bundle.Data
	g.bundle.Pet.HUD = bundle.Pet.HUD
	g.bundle.Pet.Display.Frames = bundle.Pet.Display.Frames
	g.preload()
	g.hud = NewHUD(bundle.Pet.HUD)
	g.log.Info("data reloaded", "species", g.pet.Species())
	g.showNotice("data reloaded")
	g.record("reload")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureUI()
	screen.Fill(g.bundle.Pet.HUD.Background.Or(color.NRGBA{R: 0x1d, G: 0x2b, B: 0x3a, A: 0xff}))
	g.renderer.Draw(g.world, screen)
	g.hud.Draw(screen, g.pet.Status(), g.pet.Species(), g.pet.State(), g.notice)
	g.controls.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  entities %d  clips %d  %s/%s", ebiten.ActualTPS(), ecs.Count(g.world), len(g.stage.Clips().Keys()), g.pet.State(), g.pet.Animation()), 4, g.height-16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Close releases the watcher and flushes the trace.
func (g *Game) Close() error {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	return g.trace.Close()
}
