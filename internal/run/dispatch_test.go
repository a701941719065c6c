package run

import (
	"context"
	"errors"
	"testing"
	"time"

	"trucker-client/internal/api"
	"trucker-client/internal/run/model"
	"trucker-client/internal/store"
)

type fakeDispatchBackend struct {
	active      *model.RunDetail
	createErr   error
	created     model.Run
	notifyTypes []model.NotificationType
	createCalls int
}

func (b *fakeDispatchBackend) GetOrderByID(ctx context.Context, orderID string) (model.Order, error) {
	return model.Order{ID: orderID, DistanceKm: 12, BaseReward: 1000}, nil
}

func (b *fakeDispatchBackend) GetActiveRun(ctx context.Context) (model.RunDetail, error) {
	if b.active == nil {
		return model.RunDetail{}, api.ErrNotFound
	}
	return *b.active, nil
}

func (b *fakeDispatchBackend) CreateRun(ctx context.Context, p api.CreateRunParams) (model.Run, error) {
	b.createCalls++
	if b.createErr != nil {
		return model.Run{}, b.createErr
	}
	return b.created, nil
}

func (b *fakeDispatchBackend) SendNotification(ctx context.Context, n model.Notification) {
	b.notifyTypes = append(b.notifyTypes, n.Type)
}

func params() api.CreateRunParams {
	return api.CreateRunParams{
		OrderID:     "order-1",
		SlotID:      "slot-1",
		EquipmentID: "eq-1",
		DocumentID:  "doc-1",
		InsuranceID: "ins-1",
	}
}

func TestDispatchCreatesRun(t *testing.T) {
	backend := &fakeDispatchBackend{
		created: model.Run{ID: "run-1", OrderID: "order-1", Status: model.RunInTransit, StartAt: time.Now(), EtaSeconds: 600},
	}
	cache := store.New()

	created, err := NewDispatcher(backend, cache).Dispatch(context.Background(), params())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "run-1" {
		t.Fatalf("expected run-1, got %+v", created)
	}
	if _, ok := cache.Run("run-1"); !ok {
		t.Fatalf("created run should be cached")
	}
	if _, ok := cache.Order("order-1"); !ok {
		t.Fatalf("order snapshot should be cached")
	}
}

func TestDispatchRecheckBlocksOnActiveRun(t *testing.T) {
	active := makeActiveDetail()
	backend := &fakeDispatchBackend{active: &active}

	_, err := NewDispatcher(backend, store.New()).Dispatch(context.Background(), params())
	if !errors.Is(err, ErrActiveRun) {
		t.Fatalf("expected ErrActiveRun, got %v", err)
	}
	if backend.createCalls != 0 {
		t.Fatalf("must not attempt creation after the re-check, got %d calls", backend.createCalls)
	}
	if len(backend.notifyTypes) != 1 || backend.notifyTypes[0] != model.NotifyRunConflict {
		t.Fatalf("expected one conflict notification, got %v", backend.notifyTypes)
	}
}

func TestDispatchServerConflictStillNotifies(t *testing.T) {
	backend := &fakeDispatchBackend{createErr: api.ErrConflict}

	_, err := NewDispatcher(backend, store.New()).Dispatch(context.Background(), params())
	if !errors.Is(err, ErrActiveRun) {
		t.Fatalf("expected ErrActiveRun on server conflict, got %v", err)
	}
	if len(backend.notifyTypes) != 1 || backend.notifyTypes[0] != model.NotifyRunConflict {
		t.Fatalf("expected one conflict notification, got %v", backend.notifyTypes)
	}
}

func makeActiveDetail() model.RunDetail {
	return model.RunDetail{
		Run:   model.Run{ID: "run-9", Status: model.RunInTransit},
		Order: model.Order{ID: "order-9"},
	}
}

func TestSpeedProfileFallback(t *testing.T) {
	van := SpeedProfileFor(model.EquipmentVan)
	if van.MaxSpeedKmH != van.BaseSpeedKmH*1.5 {
		t.Fatalf("max speed should be 1.5x base, got %+v", van)
	}
	unknown := SpeedProfileFor(model.EquipmentCategory("HOVERBOARD"))
	if unknown.BaseSpeedKmH <= 0 {
		t.Fatalf("unknown category must fall back to a usable profile, got %+v", unknown)
	}
}
