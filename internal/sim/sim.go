// Package sim is the client-local run-progress simulation. It is a
// best-effort replica used purely to animate the view between authoritative
// server polls: everything here is a pure function of (snapshot, state, now),
// and none of it is a source of truth for financial outcomes.
package sim

import (
	"math"
	"time"

	"trucker-client/internal/run"
)

const (
	// AccelStepKmH is how far the simulated speed moves toward its target on
	// each one-second tick. Approach is gradual, never instantaneous.
	AccelStepKmH = 5.0

	// FuelPerTick is the base fuel drain per one-second tick. Boost drains
	// three times faster.
	FuelPerTick   = 0.1
	BoostFuelMult = 3.0

	// ExhaustedSpeedFactor scales the target speed once fuel hits zero:
	// an 80% speed penalty representing fuel exhaustion.
	ExhaustedSpeedFactor = 0.2

	FuelMax = 100.0
)

// Snapshot is the immutable portion of a run the simulator reads. Fetched
// once when tracking starts and never mutated afterwards.
type Snapshot struct {
	StartAt    time.Time
	EtaSeconds int
	DeadlineAt time.Time
	DistanceKm float64
	Profile    run.SpeedProfile
}

// State is the ephemeral simulation state replaced wholesale on every tick.
type State struct {
	SpeedKmH float64
	Fuel     float64
	Boost    bool
	Ticks    int
}

// NewState returns the initial simulation state: stationary, full tank.
func NewState() State {
	return State{Fuel: FuelMax}
}

// ElapsedSeconds is the whole seconds of wall clock since the run started.
func ElapsedSeconds(snap Snapshot, now time.Time) int {
	elapsed := int(math.Floor(now.Sub(snap.StartAt).Seconds()))
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ProgressFraction is elapsed/eta clamped to [0,1]. Progress never exceeds
// 100% no matter how overdue the run is.
func ProgressFraction(snap Snapshot, now time.Time) float64 {
	if snap.EtaSeconds <= 0 {
		return 1
	}
	f := float64(ElapsedSeconds(snap, now)) / float64(snap.EtaSeconds)
	if f > 1 {
		return 1
	}
	return f
}

// DistanceCoveredKm is the portion of the order distance covered so far.
func DistanceCoveredKm(snap Snapshot, now time.Time) float64 {
	return ProgressFraction(snap, now) * snap.DistanceKm
}

// IsOvertime reports whether the run has exceeded its allotted time.
func IsOvertime(snap Snapshot, now time.Time) bool {
	return ElapsedSeconds(snap, now) > snap.EtaSeconds
}

// TargetSpeedKmH is the speed the simulation converges toward: max speed
// under boost, base speed otherwise, scaled down when fuel is exhausted.
func TargetSpeedKmH(snap Snapshot, st State) float64 {
	target := snap.Profile.BaseSpeedKmH
	if st.Boost {
		target = snap.Profile.MaxSpeedKmH
	}
	if st.Fuel <= 0 {
		target *= ExhaustedSpeedFactor
	}
	return target
}

// Advance applies one simulation tick and returns the new state. Speed steps
// toward the target without overshooting in either direction; fuel drains
// unless progress has already reached 100%.
func Advance(snap Snapshot, st State, now time.Time) State {
	next := st
	next.Ticks++

	target := TargetSpeedKmH(snap, st)
	switch {
	case next.SpeedKmH < target:
		next.SpeedKmH = math.Min(next.SpeedKmH+AccelStepKmH, target)
	case next.SpeedKmH > target:
		next.SpeedKmH = math.Max(next.SpeedKmH-AccelStepKmH, target)
	}

	if ProgressFraction(snap, now) < 1 {
		drain := FuelPerTick
		if st.Boost {
			drain *= BoostFuelMult
		}
		next.Fuel = clampFuel(next.Fuel - drain)
	}

	return next
}

// RemainingSeconds estimates time to arrival from the current simulated speed
// and remaining distance. Falls back to eta-elapsed when the speed is zero.
func RemainingSeconds(snap Snapshot, st State, now time.Time) int {
	remainingKm := snap.DistanceKm - DistanceCoveredKm(snap, now)
	if remainingKm <= 0 {
		return 0
	}
	if st.SpeedKmH <= 0 {
		return snap.EtaSeconds - ElapsedSeconds(snap, now)
	}
	return int(math.Ceil(remainingKm / st.SpeedKmH * 3600))
}

func clampFuel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > FuelMax {
		return FuelMax
	}
	return v
}
