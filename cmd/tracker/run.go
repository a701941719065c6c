package tracker

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"trucker-client/internal/api"
	"trucker-client/internal/auth"
	"trucker-client/internal/common/clock"
	"trucker-client/internal/common/config"
	"trucker-client/internal/common/timeutil"
	"trucker-client/internal/feed"
	"trucker-client/internal/route"
	"trucker-client/internal/run"
	"trucker-client/internal/sim"
	"trucker-client/internal/store"
	"trucker-client/internal/track"
)

func buildClient(cfg *config.Config) (*api.Client, *store.Store, error) {
	session, err := auth.NewSession(cfg.API.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("session: %w", err)
	}
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, session)
	return client, store.New(), nil
}

// Track mounts the active-run view for runID and renders it until the run
// reaches a terminal state or the process is interrupted.
func Track(cfg *config.Config, runID string) {
	cfg.Print()

	client, cache, err := buildClient(cfg)
	if err != nil {
		log.Fatalf("client error: %v", err)
	}

	routes := route.NewHTTPProvider(cfg.Route.BaseURL, cfg.Route.Profile, cfg.Route.Timeout)

	tracker := track.New(client, routes, cache, clock.New(), track.Config{
		TickInterval: cfg.Tracker.TickInterval,
		PollInterval: cfg.Tracker.PollInterval,
		RouteTimeout: cfg.Route.Timeout,
	})
	tracker.OnView = renderView

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Feed.Enabled {
		go feed.NewSubscriber(cfg.Feed.URL, cfg.API.Token, client, tracker).Run(ctx, runID)
	}

	fmt.Println("Press b+Enter to toggle boost.")
	go readBoostToggle(ctx, os.Stdin, tracker)

	event := tracker.Track(ctx, runID)

	switch event.Outcome {
	case track.OutcomeCompleted:
		fmt.Printf("\n✅ Delivery complete: +%.0f (penalty %.0f, reputation +%d)\n",
			event.Settlement.FinalReward, event.Settlement.Penalty, event.Settlement.ReputationGain)
	case track.OutcomeAlreadyCompleted:
		fmt.Println("\n✅ Delivery was already settled by the server.")
	case track.OutcomeFailed:
		fmt.Println("\n❌ Delivery failed.")
	case track.OutcomeCancelled:
		fmt.Println("\n🚫 Delivery cancelled.")
	case track.OutcomeDetached:
		fmt.Println("\n👋 Stopped tracking.")
	default:
		fmt.Println("\n⚠️  Something went wrong; returning home.")
	}
}

// Dispatch creates a run for an order and immediately starts tracking it.
func Dispatch(cfg *config.Config, orderID, slotID, equipmentID, documentID, insuranceID string) {
	client, cache, err := buildClient(cfg)
	if err != nil {
		log.Fatalf("client error: %v", err)
	}

	dispatcher := run.NewDispatcher(client, cache)
	created, err := dispatcher.Dispatch(context.Background(), api.CreateRunParams{
		OrderID:     orderID,
		SlotID:      slotID,
		EquipmentID: equipmentID,
		DocumentID:  documentID,
		InsuranceID: insuranceID,
	})
	if err != nil {
		log.Fatalf("dispatch error: %v", err)
	}

	fmt.Printf("🚚 Run %s started, eta %s\n", created.ID, timeutil.FormatClock(created.EtaSeconds))
	Track(cfg, created.ID)
}

// readBoostToggle flips boost on every "b" line typed while tracking.
func readBoostToggle(ctx context.Context, in *os.File, tr *track.Tracker) {
	scanner := bufio.NewScanner(in)
	on := false
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		if strings.TrimSpace(scanner.Text()) == "b" {
			on = !on
			tr.SetBoost(on)
		}
	}
}

func renderView(v sim.View) {
	bar := progressBar(v.ProgressFraction, 20)
	boost := " "
	if v.Boost {
		boost = "🔥"
	}
	fmt.Printf("\r%s %5.1f%% | %5.1f km/h%s | fuel %5.1f | %s | 💰 %.0f   ",
		bar, v.ProgressFraction*100, v.SpeedKmH, boost, v.Fuel,
		timeutil.FormatRemaining(v.RemainingSeconds, v.Overtime, v.OvertimeSeconds),
		v.DisplayReward,
	)
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
