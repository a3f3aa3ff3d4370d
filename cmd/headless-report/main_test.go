package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/Garsondee/Soft-Creatures/internal/softbody"
)

func TestFailureKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{&softbody.StateError{Tick: 3, Subject: "S1", Err: softbody.ErrZeroLengthSpring}, "zero_length_spring"},
		{&softbody.StateError{Tick: 3, Subject: "P1", Err: fmt.Errorf("position NaN")}, "state_corrupt"},
		{&softbody.TopologyError{Op: "classify", Err: softbody.ErrOrphanSpring}, "orphan_spring"},
		{&softbody.TopologyError{Op: "triangulate", Err: softbody.ErrDegenerateInput}, "degenerate_input"},
		{fmt.Errorf("something else"), "other"},
	}
	for _, tc := range cases {
		if got := failureKind(tc.err); got != tc.want {
			t.Fatalf("failureKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestSummarizeHistory(t *testing.T) {
	hist := []softbody.SimReport{
		{Tick: 0, AreaRatioMin: 1, AreaRatioMax: 1, Centroid: softbody.Vec2{X: 0, Y: 0}},
		{Tick: 30, AreaRatioMin: 0.8, AreaRatioMax: 1.2, KineticEnergy: 5, MaxSpeed: 3, Centroid: softbody.Vec2{X: 3, Y: 4}},
		{Tick: 60, AreaRatioMin: 0.9, AreaRatioMax: 1.1, KineticEnergy: 2, MaxSpeed: 1, Centroid: softbody.Vec2{X: 6, Y: 8}},
	}
	var rs runStats
	summarizeHistory(&rs, hist)

	if rs.areaRatioLo != 0.8 || rs.areaRatioHi != 1.2 {
		t.Fatalf("area range = %v..%v, want 0.8..1.2", rs.areaRatioLo, rs.areaRatioHi)
	}
	if rs.energyPeak != 5 || rs.energyFinal != 2 {
		t.Fatalf("energy peak/final = %v/%v, want 5/2", rs.energyPeak, rs.energyFinal)
	}
	if rs.maxSpeed != 3 {
		t.Fatalf("max speed = %v, want 3", rs.maxSpeed)
	}
	if math.Abs(rs.drift-10) > 1e-12 {
		t.Fatalf("drift = %v, want 10", rs.drift)
	}
}

func TestAreaEnvelope_SkipsFailedBuilds(t *testing.T) {
	all := []runStats{
		{areaRatioLo: 0.7, areaRatioHi: 1.1},
		{buildErr: softbody.ErrDegenerateInput, areaRatioLo: 0, areaRatioHi: 99},
		{areaRatioLo: 0.9, areaRatioHi: 1.4},
	}
	lo, hi := areaEnvelope(all)
	if lo != 0.7 || hi != 1.4 {
		t.Fatalf("envelope = %v..%v, want 0.7..1.4", lo, hi)
	}
	if lo, hi := areaEnvelope(nil); lo != 0 || hi != 0 {
		t.Fatalf("empty envelope should be 0..0, got %v..%v", lo, hi)
	}
}

func TestJoinCounts_Sorted(t *testing.T) {
	if got := joinCounts(nil); got != "none" {
		t.Fatalf("empty = %q", got)
	}
	got := joinCounts(map[string]int{"state_corrupt": 2, "degenerate_input": 1})
	if got != "degenerate_input=1,state_corrupt=2" {
		t.Fatalf("got %q", got)
	}
}

func TestRunCreature_DefaultSeed(t *testing.T) {
	rs := runCreature(1, 42, 45, func(p *softbody.Params) {})
	if rs.buildErr != nil {
		t.Fatalf("build: %v", rs.buildErr)
	}
	if rs.points != 15 || rs.chambers == 0 || rs.external == 0 {
		t.Fatalf("unexpected topology: %+v", rs)
	}
	if rs.stepErr == nil && rs.ticksRun != 45 {
		t.Fatalf("expected 45 ticks, got %d", rs.ticksRun)
	}
	if rs.windowSummary == nil {
		t.Fatalf("expected a window summary")
	}
}
