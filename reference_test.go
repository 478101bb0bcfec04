package digitizer

import (
	"errors"
	"math"
	"testing"

	"github.com/cheekybits/is"
	"github.com/golang/geo/r2"
)

func TestPolyline(t *testing.T) {
	is := is.New(t)

	p, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 30, Y: 50}})
	is.NoErr(err)
	is.Equal(p.Length(), 60.0)
	is.Equal(p.PointAt(0), r2.Point{X: 0, Y: 0})
	is.Equal(p.PointAt(60), r2.Point{X: 30, Y: 50})
	is.Equal(p.PointAt(50), r2.Point{X: 30, Y: 40})
	is.Equal(p.PointAt(25), r2.Point{X: 15, Y: 20})
	is.Equal(p.PointAt(55), r2.Point{X: 30, Y: 45})

	// beyond the ends along the end segments
	is.True(near(p.PointAt(-5), r2.Point{X: -3, Y: -4}))
	is.Equal(p.PointAt(62), r2.Point{X: 30, Y: 52})
	is.Equal(len(p.Vertices()), 3)
}

func TestPolylineRepeatedVertices(t *testing.T) {
	is := is.New(t)

	p, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}})
	is.NoErr(err)
	is.Equal(p.Length(), 10.0)
	is.Equal(p.PointAt(4), r2.Point{X: 4, Y: 0})
	is.Equal(p.PointAt(-1), r2.Point{X: -1, Y: 0})
	is.Equal(p.PointAt(11), r2.Point{X: 11, Y: 0})
}

func TestPolylineTooShort(t *testing.T) {
	is := is.New(t)

	_, err := NewPolyline([]r2.Point{{X: 1, Y: 1}})
	is.Err(err)
	is.True(errors.Is(err, ErrDegenerateCurve))
}

func TestGeodesic(t *testing.T) {
	is := is.New(t)

	// a quarter of the equator
	g, err := NewGeodesic([]r2.Point{{X: 0, Y: 0}, {X: 45, Y: 0}, {X: 90, Y: 0}})
	is.NoErr(err)
	want := math.Pi / 2 * EarthRadiusMeters
	is.True(math.Abs(g.Length()-want) < 1e-3)

	start := g.PointAt(0)
	is.True(math.Abs(start.X) < 1e-9 && math.Abs(start.Y) < 1e-9)

	mid := g.PointAt(g.Length() / 3)
	is.True(math.Abs(mid.X-30) < 1e-6)
	is.True(math.Abs(mid.Y) < 1e-6)

	end := g.PointAt(2 * g.Length())
	is.True(math.Abs(end.X-90) < 1e-6)
}

func TestGeodesicInvalid(t *testing.T) {
	is := is.New(t)

	_, err := NewGeodesic([]r2.Point{{X: 0, Y: 91}, {X: 1, Y: 0}})
	is.Err(err)

	_, err = NewGeodesic([]r2.Point{{X: 5, Y: 5}, {X: 5, Y: 5}})
	is.Err(err)
	is.True(errors.Is(err, ErrDegenerateCurve))
}

func near(a, b r2.Point) bool {
	return a.Sub(b).Norm() < 1e-9
}
