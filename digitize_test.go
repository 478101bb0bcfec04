package digitizer

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/NilsChudalla/svg-digitizer-for-gempy/svg"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

const section = `<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
     width="200" height="100" viewBox="0 0 200 100">
  <g inkscape:groupmode="layer" inkscape:label="Horizons">
    <path id="top" inkscape:label="Top" d="M0 0 H200"/>
    <path id="base" d="M0 100 L200 100"/>
    <path id="dot" d="M50 50 L50 50"/>
  </g>
  <path id="hidden" style="display:none" d="M0 50 H10"/>
</svg>`

func parse(t *testing.T, doc string) *svg.Svg {
	t.Helper()
	s, err := svg.ParseSvg(doc, t.Name())
	require.NoError(t, err)
	return s
}

func quiet(t *testing.T) {
	Logger.SetOutput(io.Discard)
	t.Cleanup(func() { Logger.SetOutput(log.Writer()) })
}

func TestDigitize(t *testing.T) {
	quiet(t)
	ref, err := NewPolyline([]r2.Point{{X: 1000, Y: 0}, {X: 1000, Y: 400}})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Step = 50
	opts.SkipDegenerate = true
	opts.SkipHidden = true

	out, err := Digitize(parse(t, section), ref, Extent{ZMin: -200, ZMax: 0}, opts)
	require.NoError(t, err)
	require.Len(t, out, 2)

	top := out[0]
	assert.Equal(t, "top", top.ID)
	assert.Equal(t, "Top", top.Label)
	require.Len(t, top.Coords, 5)
	for i, c := range top.Coords {
		assert.InDelta(t, 1000, c.X, 1e-9)
		assert.InDelta(t, float64(i)*100, c.Y, 1e-9)
		assert.Equal(t, 0.0, c.Z)
	}

	base := out[1]
	assert.Equal(t, "base", base.ID)
	for _, c := range base.Coords {
		assert.Equal(t, -200.0, c.Z)
	}
}

func TestDigitizeDegenerate(t *testing.T) {
	quiet(t)
	ref, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	_, err = Digitize(parse(t, section), ref, Extent{ZMin: 0, ZMax: 1}, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegeneratePath)
	var perr *PathError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "dot", perr.ID)
}

func TestDigitizeHidden(t *testing.T) {
	quiet(t)
	ref, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.SkipDegenerate = true
	out, err := Digitize(parse(t, section), ref, Extent{ZMin: 0, ZMax: 1}, opts)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "hidden", out[2].ID)
	assert.Len(t, out[2].Points, 11)
}

func TestDigitizeValidatesFirst(t *testing.T) {
	doc := parse(t, section)
	ref, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	// the degenerate path would fail too, but the shared inputs are checked first
	_, err = Digitize(doc, ref, Extent{ZMin: 1, ZMax: 0}, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidExtent)

	_, err = Digitize(doc, lengthOnly(5), Extent{ZMin: 0, ZMax: 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidReferenceType)

	flat, err := NewPolyline([]r2.Point{{X: 2, Y: 2}, {X: 2, Y: 2}})
	require.NoError(t, err)
	_, err = Digitize(doc, flat, Extent{ZMin: 0, ZMax: 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDegenerateCurve)

	_, err = Digitize(nil, ref, Extent{ZMin: 0, ZMax: 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingGeometry)
}

func TestDigitizeNoCanvas(t *testing.T) {
	doc := parse(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100%"><path d="M0 0 L1 1"/></svg>`)
	ref, err := NewPolyline([]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}})
	require.NoError(t, err)

	_, err = Digitize(doc, ref, Extent{ZMin: 0, ZMax: 1}, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidCanvas)
}

func TestSample(t *testing.T) {
	quiet(t)
	opts := DefaultOptions()
	opts.Step = 100
	opts.SkipDegenerate = true
	opts.SkipHidden = true

	paths, canvas, err := Sample(parse(t, section), opts)
	require.NoError(t, err)
	assert.Equal(t, Canvas{Width: 200, Height: 100}, canvas)
	require.Len(t, paths, 2)
	diff(t, []curve.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}, paths[0].Points, approx(1e-9))

	opts.Step = 0
	_, _, err = Sample(parse(t, section), opts)
	assert.ErrorIs(t, err, ErrInvalidStep)
}
