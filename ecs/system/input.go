package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/digipet/ecs"
	"github.com/milk9111/digipet/ecs/component"
)

type InputSystem struct {
	read func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{read: readInput}
}

// NewInputSystemFrom uses read instead of the keyboard and gamepad.
func NewInputSystemFrom(read func() component.Input) *InputSystem {
	return &InputSystem{read: read}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	in := i.read()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}

func readInput() component.Input {
	in := component.Input{
		Feed:  inpututil.IsKeyJustPressed(ebiten.KeyF),
		Train: inpututil.IsKeyJustPressed(ebiten.KeyT),
		Pause: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		in.Feed = in.Feed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Train = in.Train || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	return in
}
