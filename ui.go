package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

type uiKit struct {
	face      ebtext.Face
	btnImage  *widget.ButtonImage
	textColor *widget.ButtonTextColor
}

func newUIKit() uiKit {
	idle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})
	pressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255})
	return uiKit{
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
		btnImage:  &widget.ButtonImage{Idle: idle, Hover: hover, Pressed: pressed},
		textColor: &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	}
}

func (k *uiKit) button(label string, layout any, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(k.btnImage),
		widget.ButtonOpts.Text(label, &k.face, k.textColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(64, 22),
			widget.WidgetOpts.LayoutData(layout),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// NewControlsUI builds the always-visible Feed / Train / Pause row along the
// bottom edge. Clicks are queued as actions and applied by Game.Update.
func NewControlsUI(g *Game) *ebitenui.UI {
	kit := newUIKit()
	rowItem := widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	row.AddChild(kit.button("Feed", rowItem, func() { g.queue(actionFeed) }))
	row.AddChild(kit.button("Train", rowItem, func() { g.queue(actionTrain) }))
	row.AddChild(kit.button("Pause", rowItem, func() { g.queue(actionPause) }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(row)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds a centered pause panel with Resume and Quit buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	kit := newUIKit()
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	rowItem := widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &kit.face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.width/2, g.height/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(kit.button("Resume", rowItem, func() { g.paused = false }))
	panel.AddChild(kit.button("Quit", rowItem, func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
