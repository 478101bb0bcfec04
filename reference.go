package digitizer

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used to measure geodesic
// reference curves.
const EarthRadiusMeters = 6371000.0

// ReferenceCurve is the map trace of a cross-section. Its arc length is
// expressed in map units.
type ReferenceCurve interface {
	Length() float64
}

// Interpolator is implemented by reference curves that can return the point
// at a given arc length from their start. Remapping requires it.
type Interpolator interface {
	PointAt(distance float64) r2.Point
}

// Polyline is a planar reference curve in projected map coordinates.
type Polyline struct {
	pts []r2.Point
	// cum[i] is the arc length from pts[0] to pts[i]
	cum []float64
}

var (
	_ ReferenceCurve = (*Polyline)(nil)
	_ Interpolator   = (*Polyline)(nil)
)

// NewPolyline returns the polyline through pts. It needs at least two
// vertices; a polyline of zero length is accepted here and rejected when
// remapping.
func NewPolyline(pts []r2.Point) (*Polyline, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerateCurve, len(pts))
	}
	p := &Polyline{
		pts: slices.Clone(pts),
		cum: make([]float64, len(pts)),
	}
	for i := 1; i < len(pts); i++ {
		p.cum[i] = p.cum[i-1] + pts[i].Sub(pts[i-1]).Norm()
	}
	return p, nil
}

// Length returns the planar length of the polyline.
func (p *Polyline) Length() float64 { return p.cum[len(p.cum)-1] }

// Vertices returns a copy of the polyline's vertices.
func (p *Polyline) Vertices() []r2.Point { return slices.Clone(p.pts) }

// PointAt returns the point at distance d along the polyline. The end
// vertices are returned exactly at 0 and Length. Distances beyond either end
// continue along the first or last non-degenerate segment.
func (p *Polyline) PointAt(d float64) r2.Point {
	n := len(p.pts)
	l := p.Length()
	switch {
	case d == 0:
		return p.pts[0]
	case d == l:
		return p.pts[n-1]
	case d < 0:
		for i := 1; i < n; i++ {
			if seg := p.cum[i] - p.cum[i-1]; seg > 0 {
				dir := p.pts[i].Sub(p.pts[i-1]).Mul(1 / seg)
				return p.pts[0].Add(dir.Mul(d))
			}
		}
		return p.pts[0]
	case d > l:
		for i := n - 1; i > 0; i-- {
			if seg := p.cum[i] - p.cum[i-1]; seg > 0 {
				dir := p.pts[i].Sub(p.pts[i-1]).Mul(1 / seg)
				return p.pts[n-1].Add(dir.Mul(d - l))
			}
		}
		return p.pts[n-1]
	}

	i := sort.SearchFloat64s(p.cum, d)
	a, b := p.pts[i-1], p.pts[i]
	seg := p.cum[i] - p.cum[i-1]
	if seg == 0 {
		return b
	}
	return a.Add(b.Sub(a).Mul((d - p.cum[i-1]) / seg))
}

// Geodesic is a reference curve of longitude/latitude vertices, joined by
// great circle arcs and measured in metres on a sphere of
// EarthRadiusMeters.
type Geodesic struct {
	line   s2.Polyline
	length float64
}

var (
	_ ReferenceCurve = (*Geodesic)(nil)
	_ Interpolator   = (*Geodesic)(nil)
)

// NewGeodesic returns the geodesic polyline through lonlat, where X is the
// longitude and Y the latitude in degrees. Repeated vertices are dropped.
func NewGeodesic(lonlat []r2.Point) (*Geodesic, error) {
	var line s2.Polyline
	for i, v := range lonlat {
		if math.Abs(v.Y) > 90 || math.IsNaN(v.X) || math.IsNaN(v.Y) {
			return nil, fmt.Errorf("vertex %d: invalid coordinate (%g, %g)", i, v.X, v.Y)
		}
		pt := s2.PointFromLatLng(s2.LatLngFromDegrees(v.Y, v.X))
		if len(line) > 0 && line[len(line)-1].ApproxEqual(pt) {
			continue
		}
		line = append(line, pt)
	}
	if len(line) < 2 {
		return nil, fmt.Errorf("%w: %d distinct vertices", ErrDegenerateCurve, len(line))
	}
	return &Geodesic{
		line:   line,
		length: angleToMeters(line.Length()),
	}, nil
}

func angleToMeters(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusMeters
}

// Length returns the length of the curve in metres.
func (g *Geodesic) Length() float64 { return g.length }

// PointAt returns the longitude and latitude, in degrees, of the point d
// metres along the curve. Distances outside the curve are clamped to its
// ends.
func (g *Geodesic) PointAt(d float64) r2.Point {
	pt, _ := g.line.Interpolate(d / g.length)
	ll := s2.LatLngFromPoint(pt)
	return r2.Point{X: ll.Lng.Degrees(), Y: ll.Lat.Degrees()}
}
