package sim

import (
	"testing"
	"time"

	"trucker-client/internal/route"
	"trucker-client/internal/run"
)

var testProfile = run.SpeedProfile{BaseSpeedKmH: 40, MaxSpeedKmH: 60}

func testSnapshot(start time.Time) Snapshot {
	return Snapshot{
		StartAt:    start,
		EtaSeconds: 600,
		DeadlineAt: start.Add(10 * time.Minute),
		DistanceKm: 12,
		Profile:    testProfile,
	}
}

func TestProgressMonotonicAndClamped(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := testSnapshot(start)

	prev := -1.0
	for s := 0; s <= 1200; s += 30 {
		f := ProgressFraction(snap, start.Add(time.Duration(s)*time.Second))
		if f < prev {
			t.Fatalf("progress went backwards at %ds: %f < %f", s, f, prev)
		}
		if f > 1 {
			t.Fatalf("progress exceeded 1.0 at %ds: %f", s, f)
		}
		prev = f
	}
	if got := ProgressFraction(snap, start.Add(time.Hour)); got != 1 {
		t.Fatalf("expected 1.0 long after the deadline, got %f", got)
	}
}

func TestSpeedConvergesWithoutOvershoot(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState()

	prev := st.SpeedKmH
	for i := 0; i < 30; i++ {
		st = Advance(snap, st, start.Add(time.Duration(i)*time.Second))
		if st.SpeedKmH < prev {
			t.Fatalf("speed decreased while below target: %f -> %f", prev, st.SpeedKmH)
		}
		if st.SpeedKmH > testProfile.BaseSpeedKmH {
			t.Fatalf("speed overshot base target: %f", st.SpeedKmH)
		}
		prev = st.SpeedKmH
	}
	if st.SpeedKmH != testProfile.BaseSpeedKmH {
		t.Fatalf("expected convergence to %f, got %f", testProfile.BaseSpeedKmH, st.SpeedKmH)
	}

	// Dropping back from boost target must not undershoot either.
	st.SpeedKmH = testProfile.MaxSpeedKmH
	for i := 0; i < 30; i++ {
		st = Advance(snap, st, start.Add(time.Duration(i)*time.Second))
		if st.SpeedKmH < testProfile.BaseSpeedKmH {
			t.Fatalf("speed undershot target while decelerating: %f", st.SpeedKmH)
		}
	}
	if st.SpeedKmH != testProfile.BaseSpeedKmH {
		t.Fatalf("expected deceleration to %f, got %f", testProfile.BaseSpeedKmH, st.SpeedKmH)
	}
}

func TestBoostTargetsMaxSpeed(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState()
	st.Boost = true

	for i := 0; i < 60; i++ {
		st = Advance(snap, st, start.Add(time.Duration(i)*time.Second))
		if st.SpeedKmH > testProfile.MaxSpeedKmH {
			t.Fatalf("speed overshot boost target: %f", st.SpeedKmH)
		}
	}
	if st.SpeedKmH != testProfile.MaxSpeedKmH {
		t.Fatalf("expected convergence to %f under boost, got %f", testProfile.MaxSpeedKmH, st.SpeedKmH)
	}
}

func TestFuelBoundsAndBoostDrain(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)

	plain := NewState()
	plain = Advance(snap, plain, start)
	if plain.Fuel != FuelMax-FuelPerTick {
		t.Fatalf("expected %f after one tick, got %f", FuelMax-FuelPerTick, plain.Fuel)
	}

	boosted := NewState()
	boosted.Boost = true
	boosted = Advance(snap, boosted, start)
	if boosted.Fuel != FuelMax-FuelPerTick*BoostFuelMult {
		t.Fatalf("boost should drain 3x: got %f", boosted.Fuel)
	}

	// Fuel never goes below zero.
	empty := NewState()
	empty.Fuel = 0.05
	empty.Boost = true
	empty = Advance(snap, empty, start)
	if empty.Fuel != 0 {
		t.Fatalf("fuel should clamp at 0, got %f", empty.Fuel)
	}
}

func TestFuelStopsDrainingAtFullProgress(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState()
	st.Fuel = 50

	done := start.Add(time.Duration(snap.EtaSeconds+100) * time.Second)
	st = Advance(snap, st, done)
	if st.Fuel != 50 {
		t.Fatalf("fuel must not drain once progress hit 100%%, got %f", st.Fuel)
	}
}

func TestFuelExhaustionSpeedPenalty(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState()
	st.Fuel = 0

	want := testProfile.BaseSpeedKmH * ExhaustedSpeedFactor
	if got := TargetSpeedKmH(snap, st); got != want {
		t.Fatalf("expected %f with empty tank, got %f", want, got)
	}

	st.Boost = true
	want = testProfile.MaxSpeedKmH * ExhaustedSpeedFactor
	if got := TargetSpeedKmH(snap, st); got != want {
		t.Fatalf("expected %f with empty tank under boost, got %f", want, got)
	}
}

func TestRemainingSecondsFallback(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState() // speed zero

	now := start.Add(100 * time.Second)
	if got := RemainingSeconds(snap, st, now); got != 500 {
		t.Fatalf("expected eta-elapsed fallback of 500, got %d", got)
	}

	st.SpeedKmH = 40
	// 100s elapsed of 600 -> 10km remaining of 12 at 40km/h = 900s
	if got := RemainingSeconds(snap, st, now); got != 900 {
		t.Fatalf("expected 900s from speed, got %d", got)
	}
}

func TestBuildViewOvertime(t *testing.T) {
	start := time.Now()
	snap := testSnapshot(start)
	st := NewState()
	geom := route.StraightLine(route.Point{Lng: 0, Lat: 0}, route.Point{Lng: 1, Lat: 0})

	now := start.Add(900 * time.Second)
	v := BuildView(snap, st, geom, 1000, now)
	if !v.Overtime {
		t.Fatalf("expected overtime at 900s of 600s eta")
	}
	if v.OvertimeSeconds != 300 {
		t.Fatalf("expected 300s over, got %d", v.OvertimeSeconds)
	}
	if v.ProjectedPenalty != 500 {
		t.Fatalf("expected projected penalty 500, got %f", v.ProjectedPenalty)
	}
	if v.DisplayReward != 500 {
		t.Fatalf("displayed reward should be net of projected penalty, got %f", v.DisplayReward)
	}
	if !v.Done {
		t.Fatalf("view should report done at full progress")
	}

	// Position interpolation stays purely cosmetic and in-bounds.
	if v.Position != geom.PositionAt(1) {
		t.Fatalf("expected endpoint position, got %+v", v.Position)
	}
}
