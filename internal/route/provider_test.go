package route

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProviderParsesDirections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"coordinates":[[27.56,53.90],[27.57,53.905],[27.58,53.91]]}}]}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "driving", time.Second)
	g, err := p.Route(context.Background(), Point{Lng: 27.56, Lat: 53.90}, Point{Lng: 27.58, Lat: 53.91})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Points) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(g.Points))
	}
	if g.Points[1].Lng != 27.57 || g.Points[1].Lat != 53.905 {
		t.Fatalf("wire order must be [lon,lat], got %+v", g.Points[1])
	}
	if g.TotalKm <= 0 {
		t.Fatalf("expected derived length, got %f", g.TotalKm)
	}
}

func TestHTTPProviderErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "driving", time.Second)
	if _, err := p.Route(context.Background(), Point{}, Point{Lng: 1}); err == nil {
		t.Fatalf("expected error on HTTP 502")
	}
}

func TestHTTPProviderNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "driving", time.Second)
	if _, err := p.Route(context.Background(), Point{}, Point{Lng: 1}); err == nil {
		t.Fatalf("expected error when no route is found")
	}
}

func TestFetchFallsBackToStraightLine(t *testing.T) {
	// Nothing listens here; the request fails immediately.
	p := NewHTTPProvider("http://127.0.0.1:1", "driving", 200*time.Millisecond)

	from := Point{Lng: 27.56, Lat: 53.90}
	to := Point{Lng: 27.58, Lat: 53.91}
	g := Fetch(context.Background(), p, from, to, "run-1")

	if len(g.Points) != 2 || g.Points[0] != from || g.Points[1] != to {
		t.Fatalf("expected straight-line fallback [start, end], got %+v", g.Points)
	}

	// Interpolation still functions over the fallback.
	mid := g.PositionAt(0.5)
	if mid == from || mid == to {
		t.Fatalf("expected an interpolated midpoint, got %+v", mid)
	}
}

func TestFetchRespectsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "driving", 100*time.Millisecond)
	start := time.Now()
	g := Fetch(context.Background(), p, Point{}, Point{Lng: 1}, "run-1")
	if time.Since(start) > 2*time.Second {
		t.Fatalf("fetch did not respect the client timeout")
	}
	if len(g.Points) != 2 {
		t.Fatalf("expected fallback geometry after timeout, got %d points", len(g.Points))
	}
}
