package api

import (
	"fmt"
	"time"

	"trucker-client/internal/run/model"
)

// Wire shapes for the backend RPC boundary. Every payload is validated and
// mapped here so the simulation core only ever sees well-formed domain
// values.

type runDTO struct {
	ID                 string  `json:"run_id"`
	OrderID            string  `json:"order_id"`
	SlotID             string  `json:"slot_id"`
	Status             string  `json:"status"`
	StartAt            string  `json:"start_at"`
	EtaSeconds         int     `json:"eta_seconds"`
	DeadlineAt         string  `json:"deadline_at"`
	EquipmentID        string  `json:"equipment_id"`
	EquipmentCategory  string  `json:"equipment_category"`
	DocumentID         string  `json:"document_id"`
	InsuranceID        string  `json:"insurance_id"`
	CurrentReward      float64 `json:"current_reward"`
	AccumulatedPenalty float64 `json:"accumulated_penalty"`
	AccumulatedBonus   float64 `json:"accumulated_bonus"`
	CurrentRisk        float64 `json:"current_risk"`
	CurrentDurability  float64 `json:"current_durability"`
}

type orderDTO struct {
	ID                    string  `json:"order_id"`
	Title                 string  `json:"title"`
	CargoName             string  `json:"cargo_name"`
	Category              string  `json:"category"`
	WeightKg              float64 `json:"weight_kg"`
	VolumeM3              float64 `json:"volume_m3"`
	DistanceKm            float64 `json:"distance_km"`
	BaseReward            float64 `json:"base_reward"`
	TimeLimitMinutes      int     `json:"time_limit_minutes"`
	RequiredDocumentType  string  `json:"required_document_type"`
	RequiredEquipmentType string  `json:"required_equipment_type"`
	StartLat              float64 `json:"start_lat"`
	StartLng              float64 `json:"start_lng"`
	EndLat                float64 `json:"end_lat"`
	EndLng                float64 `json:"end_lng"`
}

type runDetailDTO struct {
	Run   runDTO   `json:"run"`
	Order orderDTO `json:"order"`
}

type profileDTO struct {
	UserID     string  `json:"user_id"`
	Nickname   string  `json:"nickname"`
	Balance    float64 `json:"balance"`
	Reputation int     `json:"reputation"`
}

type createRunRequest struct {
	UserID        string            `json:"user_id"`
	OrderID       string            `json:"order_id"`
	SlotID        string            `json:"slot_id"`
	SelectedItems selectedItemsBody `json:"selected_items"`
}

type selectedItemsBody struct {
	EquipmentID string `json:"equipment_id"`
	DocumentID  string `json:"document_id"`
	InsuranceID string `json:"insurance_id"`
}

type completeRunRequest struct {
	FinalReward    float64 `json:"final_reward"`
	PenaltyAmount  float64 `json:"penalty_amount"`
	ElapsedSeconds int     `json:"elapsed_seconds"`
}

type completeRunResponse struct {
	AlreadyCompleted bool `json:"already_completed"`
}

type notificationRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (d runDTO) toModel() (model.Run, error) {
	if d.ID == "" {
		return model.Run{}, fmt.Errorf("run_id is required")
	}
	status := model.RunStatus(d.Status)
	switch status {
	case model.RunInTransit, model.RunCompleted, model.RunFailed, model.RunCancelled:
	default:
		return model.Run{}, fmt.Errorf("unknown run status: %q", d.Status)
	}

	startAt, err := time.Parse(time.RFC3339, d.StartAt)
	if err != nil {
		return model.Run{}, fmt.Errorf("invalid start_at: %w", err)
	}
	deadlineAt, err := time.Parse(time.RFC3339, d.DeadlineAt)
	if err != nil {
		return model.Run{}, fmt.Errorf("invalid deadline_at: %w", err)
	}
	if d.EtaSeconds <= 0 {
		return model.Run{}, fmt.Errorf("eta_seconds must be positive, got %d", d.EtaSeconds)
	}
	if d.CurrentRisk < 0 || d.CurrentRisk > 1 {
		return model.Run{}, fmt.Errorf("current_risk out of range (0..1): %f", d.CurrentRisk)
	}
	if d.CurrentDurability < 0 || d.CurrentDurability > 100 {
		return model.Run{}, fmt.Errorf("current_durability out of range (0..100): %f", d.CurrentDurability)
	}

	return model.Run{
		ID:                 d.ID,
		OrderID:            d.OrderID,
		SlotID:             d.SlotID,
		Status:             status,
		StartAt:            startAt,
		EtaSeconds:         d.EtaSeconds,
		DeadlineAt:         deadlineAt,
		EquipmentID:        d.EquipmentID,
		EquipmentCategory:  model.EquipmentCategory(d.EquipmentCategory),
		DocumentID:         d.DocumentID,
		InsuranceID:        d.InsuranceID,
		CurrentReward:      d.CurrentReward,
		AccumulatedPenalty: d.AccumulatedPenalty,
		AccumulatedBonus:   d.AccumulatedBonus,
		CurrentRisk:        d.CurrentRisk,
		CurrentDurability:  d.CurrentDurability,
	}, nil
}

func (d orderDTO) toModel() (model.Order, error) {
	if d.ID == "" {
		return model.Order{}, fmt.Errorf("order_id is required")
	}
	if d.DistanceKm <= 0 {
		return model.Order{}, fmt.Errorf("distance_km must be positive, got %f", d.DistanceKm)
	}
	if d.BaseReward < 0 {
		return model.Order{}, fmt.Errorf("base_reward cannot be negative")
	}
	if err := validateLatLng(d.StartLat, d.StartLng); err != nil {
		return model.Order{}, fmt.Errorf("invalid start coordinates: %w", err)
	}
	if err := validateLatLng(d.EndLat, d.EndLng); err != nil {
		return model.Order{}, fmt.Errorf("invalid end coordinates: %w", err)
	}

	return model.Order{
		ID:                    d.ID,
		Title:                 d.Title,
		CargoName:             d.CargoName,
		Category:              d.Category,
		WeightKg:              d.WeightKg,
		VolumeM3:              d.VolumeM3,
		DistanceKm:            d.DistanceKm,
		BaseReward:            d.BaseReward,
		TimeLimitMinutes:      d.TimeLimitMinutes,
		RequiredDocumentType:  d.RequiredDocumentType,
		RequiredEquipmentType: model.EquipmentCategory(d.RequiredEquipmentType),
		StartLat:              d.StartLat,
		StartLng:              d.StartLng,
		EndLat:                d.EndLat,
		EndLng:                d.EndLng,
	}, nil
}

func (d runDetailDTO) toModel() (model.RunDetail, error) {
	r, err := d.Run.toModel()
	if err != nil {
		return model.RunDetail{}, fmt.Errorf("invalid run payload: %w", err)
	}
	o, err := d.Order.toModel()
	if err != nil {
		return model.RunDetail{}, fmt.Errorf("invalid order payload: %w", err)
	}
	return model.RunDetail{Run: r, Order: o}, nil
}

func (d profileDTO) toModel() (model.Profile, error) {
	if d.UserID == "" {
		return model.Profile{}, fmt.Errorf("user_id is required")
	}
	return model.Profile{
		UserID:     d.UserID,
		Nickname:   d.Nickname,
		Balance:    d.Balance,
		Reputation: d.Reputation,
	}, nil
}

func validateLatLng(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range (-90..90)")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude out of range (-180..180)")
	}
	return nil
}
