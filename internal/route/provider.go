package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trucker-client/internal/common/logger"
)

// Provider returns a road-shaped polyline between two points. Implementations
// are expected to fail; callers fall back to StraightLine.
type Provider interface {
	Route(ctx context.Context, from, to Point) (Geometry, error)
}

// HTTPProvider queries an OSRM-compatible directions service.
type HTTPProvider struct {
	baseURL string
	profile string
	client  *http.Client
}

func NewHTTPProvider(baseURL, profile string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		profile: profile,
		client:  &http.Client{Timeout: timeout},
	}
}

type directionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func (p *HTTPProvider) Route(ctx context.Context, from, to Point) (Geometry, error) {
	endpoint := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f",
		p.baseURL, url.PathEscape(p.profile),
		from.Lng, from.Lat, to.Lng, to.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Geometry{}, fmt.Errorf("build directions request: %w", err)
	}
	q := req.URL.Query()
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	req.URL.RawQuery = q.Encode()

	resp, err := p.client.Do(req)
	if err != nil {
		return Geometry{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Geometry{}, fmt.Errorf("directions service returned %d", resp.StatusCode)
	}

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return Geometry{}, fmt.Errorf("decode directions response: %w", err)
	}
	if dr.Code != "Ok" || len(dr.Routes) == 0 {
		return Geometry{}, fmt.Errorf("no route found (code=%s)", dr.Code)
	}

	coords := dr.Routes[0].Geometry.Coordinates
	points := make([]Point, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return Geometry{}, fmt.Errorf("malformed coordinate in directions response")
		}
		points = append(points, Point{Lng: c[0], Lat: c[1]})
	}
	if len(points) < 2 {
		return Geometry{}, fmt.Errorf("directions response has %d points", len(points))
	}

	return NewGeometry(points), nil
}

// Fetch resolves the geometry for a run, falling back to the straight line
// when the provider errors or times out. Never returns an error: a missing
// route must not block the simulation.
func Fetch(ctx context.Context, p Provider, from, to Point, runID string) Geometry {
	geom, err := p.Route(ctx, from, to)
	if err != nil {
		logger.Warn("route_fetch_failed", "falling back to straight-line route", "", runID, err.Error())
		return StraightLine(from, to)
	}
	return geom
}
