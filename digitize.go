// Package digitizer turns the features of a cross-section sketch into 3D
// map coordinates. Paths are sampled at an even arc length step in canvas
// pixels, then projected onto the vertical plane below a reference curve
// drawn on the map, with the canvas height spanning a fixed elevation range.
package digitizer

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/NilsChudalla/svg-digitizer-for-gempy/svg"
)

// Logger receives notes about skipped features.
var Logger = log.New(os.Stderr, "digitizer: ", log.LstdFlags)

// Document is a parsed sketch. *svg.Svg implements it.
type Document interface {
	Canvas() (width, height float64, err error)
	Features() ([]svg.Feature, error)
}

var _ Document = (*svg.Svg)(nil)

// Options control Digitize.
type Options struct {
	// Step is the sampling distance along every path, in pixels.
	Step float64
	// Accuracy of arc length measurements, in pixels.
	Accuracy float64
	Bounds   BoundsPolicy
	// SkipDegenerate drops paths of zero length instead of failing.
	SkipDegenerate bool
	// SkipHidden drops features styled display:none, directly or through
	// an ancestor.
	SkipHidden bool
}

// DefaultOptions samples every pixel and extrapolates points outside the
// canvas.
func DefaultOptions() Options {
	return Options{
		Step:     1,
		Accuracy: DefaultAccuracy,
		Bounds:   BoundsExtrapolate,
	}
}

// Sample discretizes every feature of doc. The returned paths keep document
// order.
func Sample(doc Document, opts Options) ([]PixelPath, Canvas, error) {
	if !(opts.Step > 0) {
		return nil, Canvas{}, fmt.Errorf("%w: %g", ErrInvalidStep, opts.Step)
	}
	w, h, err := doc.Canvas()
	if err != nil {
		return nil, Canvas{}, fmt.Errorf("%w: %v", ErrInvalidCanvas, err)
	}
	canvas := Canvas{Width: w, Height: h}
	if err := canvas.Validate(); err != nil {
		return nil, Canvas{}, err
	}

	features, err := doc.Features()
	if err != nil {
		return nil, Canvas{}, err
	}
	paths := make([]PixelPath, 0, len(features))
	for _, f := range features {
		if opts.SkipHidden && f.Hidden {
			Logger.Printf("skipping hidden path %q", f.ID)
			continue
		}
		p, err := DiscretizeFeature(f.ID, f.Label, NewArcPath(f.Path, opts.Accuracy), opts.Step)
		if err != nil {
			if opts.SkipDegenerate && errors.Is(err, ErrDegeneratePath) {
				Logger.Printf("skipping path %q without length", f.ID)
				continue
			}
			return nil, Canvas{}, err
		}
		paths = append(paths, p)
	}
	return paths, canvas, nil
}

// Digitize samples every feature of doc and remaps it below ref. All inputs
// are validated before any path is sampled.
func Digitize(doc Document, ref ReferenceCurve, extent Extent, opts Options) ([]SpatialPath, error) {
	if doc == nil {
		return nil, ErrMissingGeometry
	}
	if err := extent.Validate(); err != nil {
		return nil, err
	}
	w, h, err := doc.Canvas()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCanvas, err)
	}
	if _, _, err := checkInputs(Canvas{Width: w, Height: h}, ref, extent); err != nil {
		return nil, err
	}

	paths, canvas, err := Sample(doc, opts)
	if err != nil {
		return nil, err
	}
	r := &Remapper{Bounds: opts.Bounds}
	return r.Remap(paths, canvas, ref, extent)
}
