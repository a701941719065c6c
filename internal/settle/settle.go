// Package settle computes the reward a run pays out when it ends, locally
// for optimistic display and as the payload sent to the authoritative
// completion call.
package settle

import "math"

const (
	flatPenaltyShare    = 0.5
	perMinutePenalty    = 0.2
	reputationClean     = 10
	reputationPenalized = 5
)

// Settlement is the outcome of ending a run after elapsedSeconds.
type Settlement struct {
	Overtime       bool
	Penalty        float64
	FinalReward    float64
	ReputationGain int
}

// Settle applies the time-based penalty policy. When overtime, the penalty
// is max(baseReward*0.5, floor(overtimeMinutes)*0.2): whichever policy
// removes more value wins, leaving at most 50% of the base reward. The
// per-minute term is kept exactly as the product defines it, even though the
// flat term dominates for realistic inputs.
func Settle(baseReward float64, etaSeconds, elapsedSeconds int) Settlement {
	overtime := elapsedSeconds > etaSeconds

	penalty := 0.0
	if overtime {
		overtimeMinutes := math.Floor(float64(elapsedSeconds-etaSeconds) / 60)
		penalty = math.Max(baseReward*flatPenaltyShare, overtimeMinutes*perMinutePenalty)
	}

	finalReward := baseReward - penalty
	if finalReward < 0 {
		finalReward = 0
	}

	reputation := reputationClean
	if penalty > 0 {
		reputation = reputationPenalized
	}

	return Settlement{
		Overtime:       overtime,
		Penalty:        penalty,
		FinalReward:    finalReward,
		ReputationGain: reputation,
	}
}
