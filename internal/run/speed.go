// Package run holds the static gameplay tables the client needs to simulate
// a delivery between server syncs.
package run

import "trucker-client/internal/run/model"

// SpeedProfile maps an equipment category to the speeds used to derive
// simulated motion. Max speed is the boost target, conventionally 1.5x base.
type SpeedProfile struct {
	BaseSpeedKmH float64
	MaxSpeedKmH  float64
}

var speedProfiles = map[model.EquipmentCategory]SpeedProfile{
	model.EquipmentBicycle:    {BaseSpeedKmH: 20, MaxSpeedKmH: 30},
	model.EquipmentMotorcycle: {BaseSpeedKmH: 60, MaxSpeedKmH: 90},
	model.EquipmentVan:        {BaseSpeedKmH: 50, MaxSpeedKmH: 75},
	model.EquipmentTruck:      {BaseSpeedKmH: 40, MaxSpeedKmH: 60},
}

// defaultProfile covers equipment categories the client does not know about,
// so a new server-side category never stalls the simulation at speed zero.
var defaultProfile = SpeedProfile{BaseSpeedKmH: 40, MaxSpeedKmH: 60}

// SpeedProfileFor returns the speed profile for a category, falling back to
// a default profile for unknown categories.
func SpeedProfileFor(category model.EquipmentCategory) SpeedProfile {
	if p, ok := speedProfiles[category]; ok {
		return p
	}
	return defaultProfile
}
