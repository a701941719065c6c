package model

import "time"

// Run is one active or finished delivery attempt against an order.
// The loadout fields are chosen at creation and never change afterwards.
type Run struct {
	ID                 string            `json:"run_id"`
	OrderID            string            `json:"order_id"`
	SlotID             string            `json:"slot_id"`
	Status             RunStatus         `json:"status"`
	StartAt            time.Time         `json:"start_at"`
	EtaSeconds         int               `json:"eta_seconds"`
	DeadlineAt         time.Time         `json:"deadline_at"`
	EquipmentID        string            `json:"equipment_id"`
	EquipmentCategory  EquipmentCategory `json:"equipment_category"`
	DocumentID         string            `json:"document_id"`
	InsuranceID        string            `json:"insurance_id"`
	CurrentReward      float64           `json:"current_reward"`
	AccumulatedPenalty float64           `json:"accumulated_penalty"`
	AccumulatedBonus   float64           `json:"accumulated_bonus"`
	CurrentRisk        float64           `json:"current_risk"`
	CurrentDurability  float64           `json:"current_durability"`
}

// Order is an immutable delivery offer snapshot. Once a run references an
// order the client treats every field as read-only.
type Order struct {
	ID                    string            `json:"order_id"`
	Title                 string            `json:"title"`
	CargoName             string            `json:"cargo_name"`
	Category              string            `json:"category"`
	WeightKg              float64           `json:"weight_kg"`
	VolumeM3              float64           `json:"volume_m3"`
	DistanceKm            float64           `json:"distance_km"`
	BaseReward            float64           `json:"base_reward"`
	TimeLimitMinutes      int               `json:"time_limit_minutes"`
	RequiredDocumentType  string            `json:"required_document_type"`
	RequiredEquipmentType EquipmentCategory `json:"required_equipment_type"`
	StartLat              float64           `json:"start_lat"`
	StartLng              float64           `json:"start_lng"`
	EndLat                float64           `json:"end_lat"`
	EndLng                float64           `json:"end_lng"`
}

// RunDetail is the shape returned by the run lookup: the run plus its order.
// The server may auto-complete a run as a side effect of the lookup, in which
// case the detail already reflects the post-completion state.
type RunDetail struct {
	Run   Run   `json:"run"`
	Order Order `json:"order"`
}

// Profile is the cached user profile, refreshed after settlement so balance
// and reputation reflect the authoritative outcome.
type Profile struct {
	UserID     string  `json:"user_id"`
	Nickname   string  `json:"nickname"`
	Balance    float64 `json:"balance"`
	Reputation int     `json:"reputation"`
}

// Notification is a user-facing message delivered best-effort via the
// notification collaborator.
type Notification struct {
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}
