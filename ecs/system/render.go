package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
)

// RenderSystem draws every entity carrying Sprite, Transform and RenderLayer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

type drawable struct {
	e     ecs.Entity
	layer int
	s     *component.Sprite
	t     *component.Transform
}

func (r *RenderSystem) collect(w *ecs.World) []drawable {
	var out []drawable
	ecs.ForEach3(w,
		component.SpriteComponent.Kind(),
		component.TransformComponent.Kind(),
		component.RenderLayerComponent.Kind(),
		func(e ecs.Entity, s *component.Sprite, t *component.Transform, l *component.RenderLayer) {
			if s.Hidden || s.Image == nil {
				return
			}
			out = append(out, drawable{e: e, layer: l.Index, s: s, t: t})
		})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].layer != out[j].layer {
			return out[i].layer < out[j].layer
		}
		return uint64(out[i].e) < uint64(out[j].e)
	})
	return out
}

// Drawables returns the entities Draw would render, in draw order.
func (r *RenderSystem) Drawables(w *ecs.World) []ecs.Entity {
	items := r.collect(w)
	out := make([]ecs.Entity, len(items))
	for i, d := range items {
		out[i] = d.e
	}
	return out
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, d := range r.collect(w) {
		sx := d.t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := d.t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-d.s.OriginX, -d.s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(d.t.X, d.t.Y)
		screen.DrawImage(d.s.Image, op)
	}
}
