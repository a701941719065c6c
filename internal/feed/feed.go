// Package feed subscribes to server push of run status changes over a
// websocket. The feed only accelerates reconciliation: every event funnels
// through the same authoritative refetch the poller uses, and any feed
// failure is silent because polling remains the safety net.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"trucker-client/internal/common/logger"
	"trucker-client/internal/run/model"
)

const (
	readWait  = 60 * time.Second
	pingEvery = 30 * time.Second
	pingWait  = 10 * time.Second
)

// Fetcher refetches the authoritative run detail for a pushed event.
type Fetcher interface {
	GetRunByID(ctx context.Context, runID string) (model.RunDetail, error)
}

// Sink receives the refetched detail; satisfied by *track.Tracker.
type Sink interface {
	Push(detail model.RunDetail)
}

type event struct {
	Type  string `json:"type"`
	RunID string `json:"run_id"`
}

type Subscriber struct {
	url     string
	token   string
	fetcher Fetcher
	sink    Sink
}

func NewSubscriber(url, token string, fetcher Fetcher, sink Sink) *Subscriber {
	return &Subscriber{url: url, token: token, fetcher: fetcher, sink: sink}
}

// Run connects and forwards run_status_changed events for runID until the
// connection drops or ctx is cancelled. Always returns cleanly; callers run
// it in its own goroutine and do not care why it ended.
func (s *Subscriber) Run(ctx context.Context, runID string) {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if err != nil {
		logger.Warn("feed_dial_failed", "continuing on polling only", "", runID, err.Error())
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(pingWait)); err != nil {
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				conn.Close()
				return
			}
		}
	}()

	logger.Info("feed_connected", s.url, "", runID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("feed_closed", "continuing on polling only", "", runID, err.Error())
			}
			return
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Debug("feed_bad_message", err.Error(), "", runID)
			continue
		}
		if ev.Type != "run_status_changed" || ev.RunID != runID {
			continue
		}

		// Refetch through the validated RPC boundary rather than trusting
		// the push payload.
		detail, err := s.fetcher.GetRunByID(ctx, ev.RunID)
		if err != nil {
			logger.Warn("feed_refetch_failed", "waiting for next poll", "", runID, err.Error())
			continue
		}
		s.sink.Push(detail)
	}
}
