package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/digipet/pet"
	"github.com/milk9111/digipet/prefabs"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 14

type hungerLevel int

const (
	hungerGood hungerLevel = iota
	hungerWarn
	hungerBad
)

// levelForHunger buckets the hunger readout colour: above 50 is fine,
// above 20 is a warning.
func levelForHunger(h float64) hungerLevel {
	switch {
	case h > 50:
		return hungerGood
	case h > 20:
		return hungerWarn
	default:
		return hungerBad
	}
}

// formatAge renders seconds as hh:mm:ss.
func formatAge(seconds float64) string {
	if !(seconds > 0) {
		return "00:00:00"
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

type hudLine struct {
	text string
	clr  color.Color
}

type HUD struct {
	face  ebtext.Face
	text  color.Color
	level [3]color.Color
}

func NewHUD(spec prefabs.HUDSpec) *HUD {
	return &HUD{
		face: ebtext.NewGoXFace(basicfont.Face7x13),
		text: color.White,
		level: [3]color.Color{
			spec.Good.Or(color.NRGBA{R: 0x3a, G: 0xd1, B: 0x5a, A: 0xff}),
			spec.Warn.Or(color.NRGBA{R: 0xe8, G: 0xd2, B: 0x3a, A: 0xff}),
			spec.Bad.Or(color.NRGBA{R: 0xe0, G: 0x45, B: 0x3a, A: 0xff}),
		},
	}
}

func (h *HUD) lines(st pet.Status, species string, state pet.State, notice string) []hudLine {
	out := []hudLine{
		{text: species, clr: h.text},
		{text: fmt.Sprintf("Hunger %3.0f", math.Floor(st.Hunger)), clr: h.level[levelForHunger(st.Hunger)]},
		{text: fmt.Sprintf("Str %.0f  Train %d", st.Strength, st.Training), clr: h.text},
		{text: fmt.Sprintf("Mood %3.0f", st.Happiness), clr: h.text},
		{text: "Age " + formatAge(st.Age), clr: h.text},
	}
	switch {
	case st.Sleeping:
		out = append(out, hudLine{text: "zzz", clr: h.text})
	case state == pet.StateFeeding:
		out = append(out, hudLine{text: "eating...", clr: h.text})
	}
	if notice != "" {
		out = append(out, hudLine{text: notice, clr: h.level[hungerWarn]})
	}
	return out
}

func (h *HUD) Draw(screen *ebiten.Image, st pet.Status, species string, state pet.State, notice string) {
	for i, l := range h.lines(st, species, state, notice) {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(6, float64(4+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(l.clr)
		ebtext.Draw(screen, l.text, h.face, op)
	}
}
