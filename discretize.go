package digitizer

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// maxSamples bounds the number of points Discretize returns for one path.
const maxSamples = 1 << 24

// Discretize samples g at arc length offsets 0, step, 2*step, ... and always
// ends with the exact end point of g, so the last gap may be shorter than
// step. The result has at least two points.
//
// Discretize returns ErrInvalidStep if step is not positive, ErrMissingGeometry
// for a nil g and ErrDegeneratePath if g has no finite positive length. A step
// so small that g would need more than maxSamples points is an ErrInvalidStep.
func Discretize(g Geometry, step float64) ([]curve.Point, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	if g == nil {
		return nil, ErrMissingGeometry
	}
	l := g.Length()
	if !(l > 0) || math.IsInf(l, 0) {
		return nil, fmt.Errorf("%w: length %g", ErrDegeneratePath, l)
	}

	q := l / step
	if math.IsInf(q, 0) || q > maxSamples {
		return nil, fmt.Errorf("%w: %g too small for length %g", ErrInvalidStep, step, l)
	}
	n := int(math.Floor(q))
	pts := make([]curve.Point, 0, n+2)
	for i := 0; i <= n; i++ {
		pts = append(pts, g.PointAt(float64(i)*step/l))
	}
	if float64(n)*step < l {
		pts = append(pts, g.PointAt(1))
	}
	return pts, nil
}

// DiscretizeFeature discretizes g into a PixelPath carrying id and label.
// Failures are reported as a *PathError for id.
func DiscretizeFeature(id, label string, g Geometry, step float64) (PixelPath, error) {
	pts, err := Discretize(g, step)
	if err != nil {
		return PixelPath{}, &PathError{ID: id, Err: err}
	}
	return PixelPath{ID: id, Label: label, Points: pts}, nil
}
