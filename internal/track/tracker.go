// Package track runs the active-run view loop: a one-second local simulation
// tick for animation and a ten-second authoritative poll for reconciliation.
// The server always wins terminal transitions; the local simulation may only
// end the view through its own 100% progress trigger.
package track

import (
	"context"
	"fmt"
	"time"

	"trucker-client/internal/api"
	"trucker-client/internal/common/clock"
	"trucker-client/internal/common/logger"
	"trucker-client/internal/route"
	"trucker-client/internal/run"
	"trucker-client/internal/run/model"
	"trucker-client/internal/settle"
	"trucker-client/internal/sim"
	"trucker-client/internal/store"
)

// Backend is the slice of the RPC client the tracker needs.
type Backend interface {
	GetRunByID(ctx context.Context, runID string) (model.RunDetail, error)
	CompleteRun(ctx context.Context, runID string, finalReward, penalty float64, elapsedSeconds int) (api.CompleteResult, error)
	SendNotification(ctx context.Context, n model.Notification)
	GetProfile(ctx context.Context) (model.Profile, error)
}

// Outcome is the terminal event the caller navigates on.
type Outcome string

const (
	// OutcomeCompleted: settled by this client; rewards applied once.
	OutcomeCompleted Outcome = "COMPLETED"
	// OutcomeAlreadyCompleted: a backend scheduler settled first. Normal
	// race, no financial update on this side.
	OutcomeAlreadyCompleted Outcome = "ALREADY_COMPLETED"
	OutcomeFailed           Outcome = "FAILED"
	OutcomeCancelled        Outcome = "CANCELLED"
	// OutcomeDetached: the view unmounted before the run ended.
	OutcomeDetached Outcome = "DETACHED"
	// OutcomeError: unexpected failure; the caller still navigates home and
	// lets the next poll/profile refresh correct any inconsistency.
	OutcomeError Outcome = "ERROR"
)

// Event is the single terminal result of tracking a run.
type Event struct {
	Outcome    Outcome
	Run        model.Run
	Settlement settle.Settlement
}

type Config struct {
	TickInterval time.Duration
	PollInterval time.Duration
	RouteTimeout time.Duration
}

type Tracker struct {
	backend Backend
	routes  route.Provider
	cache   *store.Store
	clk     clock.Clock
	cfg     Config

	// OnView receives the rebuilt view model after every tick. Called from
	// the tracking goroutine; must not block.
	OnView func(sim.View)

	updates chan model.RunDetail
	boost   chan bool
}

func New(backend Backend, routes route.Provider, cache *store.Store, clk clock.Clock, cfg Config) *Tracker {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.RouteTimeout <= 0 {
		cfg.RouteTimeout = 5 * time.Second
	}
	return &Tracker{
		backend: backend,
		routes:  routes,
		cache:   cache,
		clk:     clk,
		cfg:     cfg,
		updates: make(chan model.RunDetail, 4),
		boost:   make(chan bool, 1),
	}
}

// SetBoost toggles boost from outside the tracking goroutine. The latest
// value wins; the change applies on the next tick.
func (t *Tracker) SetBoost(on bool) {
	select {
	case t.boost <- on:
	default:
		// drain the stale toggle and replace it
		select {
		case <-t.boost:
		default:
		}
		t.boost <- on
	}
}

// Push hands the tracker an authoritative run detail obtained elsewhere
// (e.g. the websocket feed). Non-blocking; a full queue drops the update
// because the next poll will carry the same truth.
func (t *Tracker) Push(detail model.RunDetail) {
	select {
	case t.updates <- detail:
	default:
	}
}

type pollResult struct {
	detail model.RunDetail
	err    error
}

// Track drives one run view from mount to terminal event. Both loops stop on
// every exit path; after Track returns no further tick or poll side effects
// occur. Cancelling ctx detaches the view without fabricating a terminal
// transition.
func (t *Tracker) Track(ctx context.Context, runID string) Event {
	detail, err := t.backend.GetRunByID(ctx, runID)
	if err != nil {
		// Not-found and transport failures alike end the view; the caller
		// redirects to a safe default screen rather than retrying forever.
		logger.Error("run_fetch_failed", "cannot load run detail", "", runID, err.Error())
		return Event{Outcome: OutcomeError}
	}
	t.cache.PutRun(detail.Run)
	t.cache.PutOrder(detail.Order)

	// A run that is already terminal must not be simulated at all.
	if detail.Run.Status.IsTerminal() {
		logger.Info("run_already_terminal", string(detail.Run.Status), "", runID)
		return Event{Outcome: outcomeForStatus(detail.Run.Status), Run: detail.Run}
	}

	geom := t.fetchGeometry(ctx, detail)
	snap := sim.Snapshot{
		StartAt:    detail.Run.StartAt,
		EtaSeconds: detail.Run.EtaSeconds,
		DeadlineAt: detail.Run.DeadlineAt,
		DistanceKm: detail.Order.DistanceKm,
		Profile:    run.SpeedProfileFor(detail.Run.EquipmentCategory),
	}
	state := sim.NewState()

	tick := t.clk.NewTicker(t.cfg.TickInterval)
	defer tick.Stop()
	poll := t.clk.NewTicker(t.cfg.PollInterval)
	defer poll.Stop()

	pollResults := make(chan pollResult, 1)
	pollInFlight := false

	logger.Info("tracking_started", fmt.Sprintf("eta=%ds distance=%.2fkm", snap.EtaSeconds, snap.DistanceKm), "", runID)

	for {
		select {
		case <-ctx.Done():
			logger.Info("tracking_detached", "view unmounted, timers stopped", "", runID)
			return Event{Outcome: OutcomeDetached, Run: detail.Run}

		case on := <-t.boost:
			state.Boost = on

		case <-tick.C():
			now := t.clk.Now()
			state = sim.Advance(snap, state, now)
			if t.OnView != nil {
				t.OnView(sim.BuildView(snap, state, geom, detail.Order.BaseReward, now))
			}
			if sim.ProgressFraction(snap, now) >= 1 {
				// Local trigger: the only way the simulation itself may end
				// the view.
				return t.complete(ctx, detail, sim.ElapsedSeconds(snap, now))
			}

		case <-poll.C():
			// Fire-and-forget: a slow response must never block the tick.
			if pollInFlight {
				continue
			}
			pollInFlight = true
			go func() {
				d, err := t.backend.GetRunByID(ctx, runID)
				pollResults <- pollResult{detail: d, err: err}
			}()

		case res := <-pollResults:
			pollInFlight = false
			if res.err != nil {
				// Skip this cycle; the next poll supersedes it. An
				// unreachable server never fabricates a terminal transition.
				logger.Warn("poll_failed", "keeping local simulation", "", runID, res.err.Error())
				continue
			}
			if ev, terminal := t.reconcile(res.detail); terminal {
				return ev
			}
			detail = res.detail

		case pushed := <-t.updates:
			if pushed.Run.ID != runID {
				continue
			}
			if ev, terminal := t.reconcile(pushed); terminal {
				return ev
			}
			detail = pushed
		}
	}
}

// reconcile folds an authoritative run detail into the client view. A server
// terminal status always wins over the local simulation.
func (t *Tracker) reconcile(detail model.RunDetail) (Event, bool) {
	t.cache.PutRun(detail.Run)
	if !detail.Run.Status.IsTerminal() {
		return Event{}, false
	}
	logger.Info("server_terminal_status", string(detail.Run.Status), "", detail.Run.ID)
	t.cache.InvalidateProfile()
	return Event{Outcome: outcomeForStatus(detail.Run.Status), Run: detail.Run}, true
}

// complete settles the run after the local 100% trigger: settle locally for
// optimistic display, then ask the server for the authoritative, idempotent
// settlement.
func (t *Tracker) complete(ctx context.Context, detail model.RunDetail, elapsedSeconds int) Event {
	runID := detail.Run.ID
	s := settle.Settle(detail.Order.BaseReward, detail.Run.EtaSeconds, elapsedSeconds)

	res, err := t.backend.CompleteRun(ctx, runID, s.FinalReward, s.Penalty, elapsedSeconds)
	if err != nil {
		// Still send the user home; the next poll/profile refresh corrects
		// any inconsistent client view.
		logger.Error("complete_failed", "navigating home without settlement", "", runID, err.Error())
		return Event{Outcome: OutcomeError, Run: detail.Run}
	}

	t.cache.InvalidateProfile()

	if res.AlreadyCompleted {
		logger.Info("already_completed", "backend scheduler settled first, no client-side reward", "", runID)
		return Event{Outcome: OutcomeAlreadyCompleted, Run: detail.Run}
	}

	t.backend.SendNotification(ctx, model.Notification{
		Title:   "Delivery completed",
		Message: fmt.Sprintf("%s delivered: +%.0f (penalty %.0f)", detail.Order.Title, s.FinalReward, s.Penalty),
		Type:    model.NotifyRunCompleted,
	})

	if profile, err := t.backend.GetProfile(ctx); err != nil {
		logger.Warn("profile_refresh_failed", "balance may be stale until next fetch", "", runID, err.Error())
	} else {
		t.cache.PutProfile(profile)
	}

	logger.Info("run_settled", fmt.Sprintf("reward=%.0f penalty=%.0f rep=+%d", s.FinalReward, s.Penalty, s.ReputationGain), "", runID)
	return Event{Outcome: OutcomeCompleted, Run: detail.Run, Settlement: s}
}

func (t *Tracker) fetchGeometry(ctx context.Context, detail model.RunDetail) route.Geometry {
	rctx, cancel := context.WithTimeout(ctx, t.cfg.RouteTimeout)
	defer cancel()
	from := route.Point{Lng: detail.Order.StartLng, Lat: detail.Order.StartLat}
	to := route.Point{Lng: detail.Order.EndLng, Lat: detail.Order.EndLat}
	return route.Fetch(rctx, t.routes, from, to, detail.Run.ID)
}

func outcomeForStatus(s model.RunStatus) Outcome {
	switch s {
	case model.RunCompleted:
		return OutcomeCompleted
	case model.RunFailed:
		return OutcomeFailed
	case model.RunCancelled:
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
