package sim

import (
	"time"

	"trucker-client/internal/route"
	"trucker-client/internal/settle"
)

// View is the per-tick view model: the complete display state, replaced
// wholesale on every tick.
type View struct {
	ElapsedSeconds    int
	ProgressFraction  float64
	DistanceCoveredKm float64
	SpeedKmH          float64
	Fuel              float64
	Boost             bool
	RemainingSeconds  int
	Overtime          bool
	OvertimeSeconds   int
	Position          route.Point
	DisplayReward     float64
	ProjectedPenalty  float64
	Done              bool
}

// BuildView assembles the view model for one tick. While overtime, the
// displayed reward is shown net of the projected penalty even though the
// actual penalty is only finalized at settlement.
func BuildView(snap Snapshot, st State, geom route.Geometry, baseReward float64, now time.Time) View {
	elapsed := ElapsedSeconds(snap, now)
	fraction := ProgressFraction(snap, now)
	overtime := IsOvertime(snap, now)

	v := View{
		ElapsedSeconds:    elapsed,
		ProgressFraction:  fraction,
		DistanceCoveredKm: fraction * snap.DistanceKm,
		SpeedKmH:          st.SpeedKmH,
		Fuel:              st.Fuel,
		Boost:             st.Boost,
		RemainingSeconds:  RemainingSeconds(snap, st, now),
		Overtime:          overtime,
		Position:          geom.PositionAt(fraction),
		DisplayReward:     baseReward,
		Done:              fraction >= 1,
	}

	if overtime {
		v.OvertimeSeconds = elapsed - snap.EtaSeconds
		projected := settle.Settle(baseReward, snap.EtaSeconds, elapsed)
		v.ProjectedPenalty = projected.Penalty
		v.DisplayReward = projected.FinalReward
	}

	return v
}
