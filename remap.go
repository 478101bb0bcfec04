package digitizer

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/golang/geo/r2"
	"honnef.co/go/curve"
)

// Point3 is a point of a cross-section in map coordinates, with Z as
// elevation.
type Point3 struct {
	X, Y, Z float64
}

// Canvas is the drawing area of a sketch in pixels.
type Canvas struct {
	Width, Height float64
}

// Validate returns ErrInvalidCanvas unless both dimensions are positive and
// finite.
func (c Canvas) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) || math.IsInf(c.Width, 0) || math.IsInf(c.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, c.Width, c.Height)
	}
	return nil
}

// Extent is the elevation range covered by a canvas, from its bottom edge
// (ZMin) to its top edge (ZMax).
type Extent struct {
	ZMin, ZMax float64
}

// Validate returns ErrInvalidExtent unless ZMin < ZMax.
func (e Extent) Validate() error {
	if !(e.ZMin < e.ZMax) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidExtent, e.ZMin, e.ZMax)
	}
	return nil
}

// PixelPath is a sampled feature in canvas pixels, y growing downwards.
type PixelPath struct {
	ID     string
	Label  string
	Points []curve.Point
}

// SpatialPath is a PixelPath with map coordinates for every point.
// Coords[i] belongs to Points[i].
type SpatialPath struct {
	ID     string
	Label  string
	Points []curve.Point
	Coords []Point3
}

// BoundsPolicy decides what happens to points outside the canvas.
type BoundsPolicy int

const (
	// BoundsExtrapolate maps outside points beyond the reference curve and
	// the vertical extent.
	BoundsExtrapolate BoundsPolicy = iota
	// BoundsClamp moves outside points onto the nearest canvas edge.
	BoundsClamp
	// BoundsReject fails with ErrOutOfCanvas.
	BoundsReject
)

func (b BoundsPolicy) String() string {
	switch b {
	case BoundsExtrapolate:
		return "extrapolate"
	case BoundsClamp:
		return "clamp"
	case BoundsReject:
		return "reject"
	}
	return fmt.Sprintf("BoundsPolicy(%d)", int(b))
}

// ParseBoundsPolicy is the inverse of BoundsPolicy.String.
func ParseBoundsPolicy(s string) (BoundsPolicy, error) {
	for _, b := range []BoundsPolicy{BoundsExtrapolate, BoundsClamp, BoundsReject} {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bounds policy %q", s)
}

// Remapper converts pixel paths into map coordinates.
type Remapper struct {
	Bounds BoundsPolicy
}

// DefaultRemapper extrapolates points outside the canvas.
var DefaultRemapper = &Remapper{}

// Remap calls DefaultRemapper.Remap.
func Remap(paths []PixelPath, canvas Canvas, ref ReferenceCurve, extent Extent) ([]SpatialPath, error) {
	return DefaultRemapper.Remap(paths, canvas, ref, extent)
}

// ProjectHorizontal maps the normalized horizontal position nx onto a
// reference curve of the given length: 0 is its start and 1 its end.
func ProjectHorizontal(nx float64, ref Interpolator, length float64) r2.Point {
	return ref.PointAt(nx * length)
}

// ProjectVertical maps the normalized vertical position ny, 0 at the top of
// the canvas, onto the extent: 0 gives ZMax and 1 gives ZMin.
func ProjectVertical(ny float64, extent Extent) float64 {
	return extent.ZMax - ny*(extent.ZMax-extent.ZMin)
}

// checkInputs validates the inputs shared by every path and returns the
// curve's interpolator and length.
func checkInputs(canvas Canvas, ref ReferenceCurve, extent Extent) (Interpolator, float64, error) {
	if err := extent.Validate(); err != nil {
		return nil, 0, err
	}
	if err := canvas.Validate(); err != nil {
		return nil, 0, err
	}
	if ref == nil {
		return nil, 0, fmt.Errorf("%w: nil curve", ErrInvalidReferenceType)
	}
	interp, ok := ref.(Interpolator)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %T", ErrInvalidReferenceType, ref)
	}
	length := ref.Length()
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, 0, fmt.Errorf("%w: length %g", ErrDegenerateCurve, length)
	}
	return interp, length, nil
}

// Remap maps every point of paths onto the vertical plane below ref. The
// horizontal pixel position selects a point along ref in proportion to its
// length, the vertical position an elevation within extent.
//
// Remap is all or nothing: on error no paths are returned. Inputs are
// validated in order extent, canvas, curve, paths.
func (r *Remapper) Remap(paths []PixelPath, canvas Canvas, ref ReferenceCurve, extent Extent) ([]SpatialPath, error) {
	interp, length, err := checkInputs(canvas, ref, extent)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if len(p.Points) < 2 {
			return nil, &PathError{ID: p.ID, Err: fmt.Errorf("%w: got %d", ErrTooFewPoints, len(p.Points))}
		}
	}

	out := make([]SpatialPath, len(paths))
	for i, p := range paths {
		coords := make([]Point3, len(p.Points))
		for j, pt := range p.Points {
			nx, ny, err := r.normalize(pt, canvas)
			if err != nil {
				return nil, &PathError{ID: p.ID, Err: fmt.Errorf("point %d: %w", j, err)}
			}
			xy := ProjectHorizontal(nx, interp, length)
			coords[j] = Point3{X: xy.X, Y: xy.Y, Z: ProjectVertical(ny, extent)}
		}
		out[i] = SpatialPath{
			ID:     p.ID,
			Label:  p.Label,
			Points: slices.Clone(p.Points),
			Coords: coords,
		}
	}
	return out, nil
}

func (r *Remapper) normalize(pt curve.Point, canvas Canvas) (nx, ny float64, err error) {
	nx, ny = pt.X/canvas.Width, pt.Y/canvas.Height
	if nx >= 0 && nx <= 1 && ny >= 0 && ny <= 1 {
		return nx, ny, nil
	}
	switch r.Bounds {
	case BoundsClamp:
		return clamp01(nx), clamp01(ny), nil
	case BoundsReject:
		return 0, 0, fmt.Errorf("%w: (%g, %g)", ErrOutOfCanvas, pt.X, pt.Y)
	}
	return nx, ny, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
