package digitizer

import (
	"math"
	"sort"

	"honnef.co/go/curve"
)

// DefaultAccuracy is the arc length accuracy, in pixels, used when none is
// given.
const DefaultAccuracy = 1e-6

// Geometry is a smooth path with a known arc length.
type Geometry interface {
	// Length returns the total arc length.
	Length() float64
	// PointAt evaluates the path at the normalized arc length t in [0, 1]:
	// PointAt(0.5) is halfway along the path, measured along the path.
	PointAt(t float64) curve.Point
}

// ArcPath is a Geometry over a Bézier path made of lines, quadratic and
// cubic Béziers. Jumps between subpaths do not count towards its length.
type ArcPath struct {
	segs []curve.PathSegment
	// ends[i] is the arc length from the start of the path to the end of
	// segs[i]
	ends     []float64
	accuracy float64
}

var _ Geometry = (*ArcPath)(nil)

// NewArcPath measures p. Segments of zero length are dropped. A
// non-positive accuracy selects DefaultAccuracy.
func NewArcPath(p curve.BezPath, accuracy float64) *ArcPath {
	if !(accuracy > 0) {
		accuracy = DefaultAccuracy
	}
	ap := &ArcPath{accuracy: accuracy}
	var total float64
	for seg := range p.Segments() {
		l := seg.Arclen(accuracy)
		if !(l > 0) {
			continue
		}
		total += l
		ap.segs = append(ap.segs, seg)
		ap.ends = append(ap.ends, total)
	}
	return ap
}

// Length implements Geometry.
func (ap *ArcPath) Length() float64 {
	if len(ap.ends) == 0 {
		return 0
	}
	return ap.ends[len(ap.ends)-1]
}

// PointAt implements Geometry. Values of t outside [0, 1] are clamped to the
// path's end points, which are returned exactly.
func (ap *ArcPath) PointAt(t float64) curve.Point {
	if len(ap.segs) == 0 {
		return curve.Point{}
	}
	if t <= 0 || math.IsNaN(t) {
		return ap.segs[0].P0
	}
	if t >= 1 {
		return endPoint(ap.segs[len(ap.segs)-1])
	}

	s := t * ap.Length()
	i := sort.SearchFloat64s(ap.ends, s)
	if i == len(ap.segs) {
		return endPoint(ap.segs[i-1])
	}
	var start float64
	if i > 0 {
		start = ap.ends[i-1]
	}
	seg := ap.segs[i]
	u := seg.SolveForArclen(s-start, ap.accuracy)
	return seg.Eval(u)
}

func endPoint(seg curve.PathSegment) curve.Point {
	switch seg.Kind {
	case curve.LineKind:
		return seg.P1
	case curve.QuadKind:
		return seg.P2
	default:
		return seg.P3
	}
}
