// Package route obtains the polyline a run is animated along and provides
// position interpolation over it. The directions service is treated as
// unreliable: any failure degrades to a straight line between the endpoints.
package route

import "math"

// Point is a geographic coordinate. The wire order of the directions service
// is [longitude, latitude], mirrored here.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Geometry is an ordered polyline of waypoints plus its derived total length.
// Immutable for the duration of a run.
type Geometry struct {
	Points  []Point
	TotalKm float64
}

// NewGeometry derives the total haversine length of the waypoint list.
func NewGeometry(points []Point) Geometry {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineKm(points[i-1], points[i])
	}
	return Geometry{Points: points, TotalKm: total}
}

// StraightLine is the fallback geometry: exactly the two endpoints.
func StraightLine(from, to Point) Geometry {
	return NewGeometry([]Point{from, to})
}

// PositionAt returns the interpolated marker position for a progress fraction
// in [0,1]. The waypoint index is floor((n-1)*fraction) and the fractional
// remainder interpolates linearly toward the next waypoint. Cosmetic only:
// the result must never feed back into financial state.
func (g Geometry) PositionAt(fraction float64) Point {
	n := len(g.Points)
	if n == 0 {
		return Point{}
	}
	if n == 1 || fraction <= 0 {
		return g.Points[0]
	}
	if fraction >= 1 {
		return g.Points[n-1]
	}

	scaled := float64(n-1) * fraction
	idx := int(math.Floor(scaled))
	if idx >= n-1 {
		return g.Points[n-1]
	}
	rem := scaled - float64(idx)

	a := g.Points[idx]
	b := g.Points[idx+1]
	return Point{
		Lng: a.Lng + (b.Lng-a.Lng)*rem,
		Lat: a.Lat + (b.Lat-a.Lat)*rem,
	}
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0

	lat1 := degreesToRadians(a.Lat)
	lng1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lng2 := degreesToRadians(b.Lng)

	dlat := lat2 - lat1
	dlng := lng2 - lng1
	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
