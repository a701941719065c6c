// Package api is the client for the authoritative game backend. Every call
// is a remote procedure against an opaque server: the client never sees the
// database behind it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"trucker-client/internal/common/logger"
	"trucker-client/internal/run/model"
)

var (
	// ErrNotFound marks a missing or expired order/run. Terminal for the
	// current view; callers redirect instead of retrying.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a server-rejected creation: occupied slot or an
	// already-active run for the user.
	ErrConflict = errors.New("conflict")
)

// TokenSource supplies the bearer credential and user identity for RPC calls.
type TokenSource interface {
	Authorization() string
	UserID() string
}

type Client struct {
	baseURL string
	http    *http.Client
	session TokenSource
}

func NewClient(baseURL string, timeout time.Duration, session TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		session: session,
	}
}

// GetOrderByID fetches an order snapshot. Fails with ErrNotFound when the
// order does not exist or has expired.
func (c *Client) GetOrderByID(ctx context.Context, orderID string) (model.Order, error) {
	var dto orderDTO
	if err := c.call(ctx, http.MethodGet, "/v1/orders/"+orderID, nil, &dto, ""); err != nil {
		return model.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return dto.toModel()
}

// GetRunByID fetches a run with its order. The server may auto-complete the
// run as a side effect; the response reflects the post-completion state.
func (c *Client) GetRunByID(ctx context.Context, runID string) (model.RunDetail, error) {
	var dto runDetailDTO
	if err := c.call(ctx, http.MethodGet, "/v1/runs/"+runID, nil, &dto, runID); err != nil {
		return model.RunDetail{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return dto.toModel()
}

// GetActiveRun returns the caller's current non-terminal run, or ErrNotFound
// when none exists. Used to re-check the single-active-run invariant before
// dispatching.
func (c *Client) GetActiveRun(ctx context.Context) (model.RunDetail, error) {
	var dto runDetailDTO
	if err := c.call(ctx, http.MethodGet, "/v1/runs/active", nil, &dto, ""); err != nil {
		return model.RunDetail{}, fmt.Errorf("get active run: %w", err)
	}
	return dto.toModel()
}

// CreateRunParams is the loadout chosen at dispatch, immutable afterwards.
type CreateRunParams struct {
	OrderID     string
	SlotID      string
	EquipmentID string
	DocumentID  string
	InsuranceID string
}

// CreateRun dispatches an order. Fails with ErrNotFound when the order is
// gone and ErrConflict when the slot is occupied or another run is active
// (the server enforces one non-terminal run per user).
func (c *Client) CreateRun(ctx context.Context, p CreateRunParams) (model.Run, error) {
	body := createRunRequest{
		UserID:  c.session.UserID(),
		OrderID: p.OrderID,
		SlotID:  p.SlotID,
		SelectedItems: selectedItemsBody{
			EquipmentID: p.EquipmentID,
			DocumentID:  p.DocumentID,
			InsuranceID: p.InsuranceID,
		},
	}
	var dto runDTO
	if err := c.call(ctx, http.MethodPost, "/v1/runs", body, &dto, ""); err != nil {
		return model.Run{}, fmt.Errorf("create run for order %s: %w", p.OrderID, err)
	}
	return dto.toModel()
}

// CompleteResult reports whether a backend scheduler settled the run first.
type CompleteResult struct {
	AlreadyCompleted bool
}

// CompleteRun requests authoritative settlement. Idempotent: when a backend
// scheduler resolved the run first, AlreadyCompleted is true and the caller
// must not apply rewards a second time.
func (c *Client) CompleteRun(ctx context.Context, runID string, finalReward, penalty float64, elapsedSeconds int) (CompleteResult, error) {
	body := completeRunRequest{
		FinalReward:    finalReward,
		PenaltyAmount:  penalty,
		ElapsedSeconds: elapsedSeconds,
	}
	var resp completeRunResponse
	if err := c.call(ctx, http.MethodPost, "/v1/runs/"+runID+"/complete", body, &resp, runID); err != nil {
		return CompleteResult{}, fmt.Errorf("complete run %s: %w", runID, err)
	}
	return CompleteResult{AlreadyCompleted: resp.AlreadyCompleted}, nil
}

// SendNotification is best-effort: failures are logged, never returned as
// blocking errors on the settlement path.
func (c *Client) SendNotification(ctx context.Context, n model.Notification) {
	body := notificationRequest{
		UserID:  c.session.UserID(),
		Title:   n.Title,
		Message: n.Message,
		Type:    string(n.Type),
	}
	if err := c.call(ctx, http.MethodPost, "/v1/notifications", body, nil, ""); err != nil {
		logger.Warn("notification_failed", "could not deliver notification", "", "", err.Error())
	}
}

// GetProfile fetches the user profile; called after settlement so balance
// and reputation reflect the authoritative outcome.
func (c *Client) GetProfile(ctx context.Context) (model.Profile, error) {
	var dto profileDTO
	if err := c.call(ctx, http.MethodGet, "/v1/profile", nil, &dto, ""); err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return dto.toModel()
}

func (c *Client) call(ctx context.Context, method, path string, body, out any, runID string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Content-Type", "application/json")
	if auth := c.session.Authorization(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("rpc_failed", fmt.Sprintf("%s %s: %v", method, path, err), requestID, runID)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s %s: %w", method, path, ErrConflict)
	case resp.StatusCode >= 400:
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return fmt.Errorf("%s %s: server returned %d: %s", method, path, resp.StatusCode, er.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}
