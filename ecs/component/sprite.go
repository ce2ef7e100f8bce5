package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite is the image currently shown for an entity. Key names the registry
// entry Image came from so systems can tell what is on screen.
type Sprite struct {
	Image   *ebiten.Image
	Key     string
	OriginX float64
	OriginY float64
	Hidden  bool
}

var SpriteComponent = NewComponent[Sprite]()

// Transform places a sprite in screen pixels. Props copy their owner's scale.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

var TransformComponent = NewComponent[Transform]()

// RenderLayer orders drawing; higher layers draw later. Ties draw in entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
