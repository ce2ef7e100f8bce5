package main

import (
	"math"
	"testing"

	"github.com/milk9111/digipet/pet"
	"github.com/milk9111/digipet/prefabs"
)

func TestLevelForHunger(t *testing.T) {
	cases := []struct {
		hunger float64
		want   hungerLevel
	}{
		{100, hungerGood},
		{50.5, hungerGood},
		{50, hungerWarn},
		{20.1, hungerWarn},
		{20, hungerBad},
		{0, hungerBad},
	}
	for _, tc := range cases {
		if got := levelForHunger(tc.hunger); got != tc.want {
			t.Fatalf("levelForHunger(%v) = %d, want %d", tc.hunger, got, tc.want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	cases := []struct {
		secs float64
		want string
	}{
		{0, "00:00:00"},
		{-5, "00:00:00"},
		{math.NaN(), "00:00:00"},
		{59.9, "00:00:59"},
		{61, "00:01:01"},
		{3*3600 + 25*60 + 7, "03:25:07"},
	}
	for _, tc := range cases {
		if got := formatAge(tc.secs); got != tc.want {
			t.Fatalf("formatAge(%v) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	h := NewHUD(prefabs.HUDSpec{})
	st := pet.Status{Hunger: 15, Strength: 3, Happiness: 40, Age: 75, Training: 2}

	lines := h.lines(st, "koromon", pet.StateFeeding, "koromon is starving!")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	if lines[1].clr != h.level[hungerBad] {
		t.Fatalf("low hunger should use the bad colour")
	}
	if lines[4].text != "Age 00:01:15" || lines[5].text != "eating..." {
		t.Fatalf("unexpected lines %+v", lines)
	}

	st.Hunger = 99.6
	if got := h.lines(st, "koromon", pet.StateIdle, "")[1].text; got != "Hunger  99" {
		t.Fatalf("hunger should round down, got %q", got)
	}

	st.Sleeping = true
	lines = h.lines(st, "koromon", pet.StateIdle, "")
	if lines[len(lines)-1].text != "zzz" {
		t.Fatalf("expected sleeping marker, got %+v", lines)
	}
}
