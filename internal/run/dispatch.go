package run

import (
	"context"
	"errors"
	"fmt"

	"trucker-client/internal/api"
	"trucker-client/internal/common/logger"
	"trucker-client/internal/run/model"
	"trucker-client/internal/store"
)

// ErrActiveRun is returned when the user already has a non-terminal run.
var ErrActiveRun = errors.New("an active run already exists")

// DispatchBackend is the slice of the RPC client dispatch needs.
type DispatchBackend interface {
	GetOrderByID(ctx context.Context, orderID string) (model.Order, error)
	GetActiveRun(ctx context.Context) (model.RunDetail, error)
	CreateRun(ctx context.Context, p api.CreateRunParams) (model.Run, error)
	SendNotification(ctx context.Context, n model.Notification)
}

type Dispatcher struct {
	backend DispatchBackend
	cache   *store.Store
}

func NewDispatcher(backend DispatchBackend, cache *store.Store) *Dispatcher {
	return &Dispatcher{backend: backend, cache: cache}
}

// Dispatch creates a run for an order. The single-active-run invariant is
// enforced server-side, but the local view can be stale, so the server is
// re-checked immediately before creating; a conflict aborts with a
// user-visible notification instead of silently overwriting state.
func (d *Dispatcher) Dispatch(ctx context.Context, p api.CreateRunParams) (model.Run, error) {
	if active, err := d.backend.GetActiveRun(ctx); err == nil {
		logger.Warn("dispatch_conflict", "active run found on re-check", "", active.Run.ID, "")
		d.backend.SendNotification(ctx, model.Notification{
			Title:   "Dispatch blocked",
			Message: "Finish your current delivery before starting another.",
			Type:    model.NotifyRunConflict,
		})
		return model.Run{}, fmt.Errorf("re-check before create: %w", ErrActiveRun)
	} else if !errors.Is(err, api.ErrNotFound) {
		return model.Run{}, fmt.Errorf("re-check active run: %w", err)
	}

	order, err := d.backend.GetOrderByID(ctx, p.OrderID)
	if err != nil {
		return model.Run{}, fmt.Errorf("order lookup: %w", err)
	}
	d.cache.PutOrder(order)

	created, err := d.backend.CreateRun(ctx, p)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			// Lost the race anyway: someone (or a stale client) created a
			// run between the re-check and the create.
			d.backend.SendNotification(ctx, model.Notification{
				Title:   "Dispatch blocked",
				Message: "Finish your current delivery before starting another.",
				Type:    model.NotifyRunConflict,
			})
			return model.Run{}, fmt.Errorf("create run: %w", ErrActiveRun)
		}
		return model.Run{}, err
	}

	d.cache.PutRun(created)
	logger.Info("run_dispatched", fmt.Sprintf("order=%s slot=%s", p.OrderID, p.SlotID), "", created.ID)
	return created, nil
}
