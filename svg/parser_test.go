package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"honnef.co/go/curve"
)

const testSvg = `<?xml version="1.0" encoding="utf-8"?>
<!-- Generator: Adobe Illustrator 15.0.2, SVG Export Plug-In . SVG Version: 6.00 Build 0)  -->
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg version="1.1" id="Layer_1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" x="0px" y="0px"
	 width="595.201px" height="841.922px" viewBox="0 0 595.201 841.922" enable-background="new 0 0 595.201 841.922"
	 xml:space="preserve">
<rect x="207" y="53" fill="#009FE3" width="181.667" height="85.333"/>
<text transform="matrix(1 0 0 1 232.3306 107.5952)" fill="#FFFFFF" font-family="'ArialMT'" font-size="31.9752">PODIUM</text>
</svg>`

const inkscapeSvg = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
     width="210mm" height="100mm" viewBox="0 0 210 100">
  <title>Section A</title>
  <defs><path id="in-defs" d="M0 0 L1 1"/></defs>
  <g inkscape:groupmode="layer" inkscape:label="Faults" transform="translate(10 0)">
    <path id="fault" inkscape:label="Main fault" d="M0 0 L100 100"/>
    <path id="nod"/>
  </g>
  <g id="hidden" style="display:none">
    <polyline id="top" points="0,50 100,50 200,60"/>
  </g>
  <line x1="0" y1="0" x2="10" y2="0"/>
</svg>`

func TestParse(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(testSvg, "test")
	is.NoErr(err)
	is.NotNil(svg)

	svg, err = ParseSvgFromReader(strings.NewReader(testSvg), "test")
	is.NoErr(err)
	is.NotNil(svg)
	is.Equal(len(svg.Elements), 0)

	w, h, err := svg.Canvas()
	is.NoErr(err)
	is.Equal(w, 595.201)
	is.Equal(h, 841.922)
}

func TestParseNotSvg(t *testing.T) {
	is := is.New(t)

	_, err := ParseSvg(`<html><body/></html>`, "test")
	is.Err(err)
}

func TestFeatures(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(inkscapeSvg, "section.svg")
	is.NoErr(err)
	is.Equal(svg.Title, "Section A")

	w, h, err := svg.Canvas()
	is.NoErr(err)
	is.Equal(w, 210.0)
	is.Equal(h, 100.0)

	features, err := svg.Features()
	is.NoErr(err)
	is.Equal(len(features), 3)

	fault := features[0]
	is.Equal(fault.ID, "fault")
	is.Equal(fault.Label, "Main fault")
	is.Equal(fault.Layer, "Faults")
	is.False(fault.Hidden)
	is.Equal(len(fault.Path), 2)
	is.Equal(fault.Path[0], curve.MoveTo(curve.Pt(10, 0)))
	is.Equal(fault.Path[1], curve.LineTo(curve.Pt(110, 100)))

	top := features[1]
	is.Equal(top.ID, "top")
	is.Equal(top.Label, "")
	is.Equal(top.Layer, "")
	is.True(top.Hidden)
	is.Equal(len(top.Path), 3)
	is.Equal(top.Path[2], curve.LineTo(curve.Pt(200, 60)))

	line := features[2]
	is.Equal(line.ID, DefaultID)
	is.Equal(line.Path[1], curve.LineTo(curve.Pt(10, 0)))
}

func TestFeaturesViewBoxOrigin(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="-50 20 100 100">
<path id="p" d="M-50 20 L50 120"/></svg>`, "test")
	is.NoErr(err)

	features, err := svg.Features()
	is.NoErr(err)
	is.Equal(len(features), 1)
	is.Equal(features[0].Path[0], curve.MoveTo(curve.Pt(0, 0)))
	is.Equal(features[0].Path[1], curve.LineTo(curve.Pt(100, 100)))
}

func TestFeaturesBadPath(t *testing.T) {
	is := is.New(t)

	svg, err := ParseSvg(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
<path id="broken" d="L 5 5"/></svg>`, "test")
	is.NoErr(err)

	_, err = svg.Features()
	is.Err(err)
	is.True(strings.Contains(err.Error(), "broken"))
}

func TestCanvasUnits(t *testing.T) {
	tests := []struct {
		width, height string
		w, h          float64
		err           bool
	}{
		{"800", "600", 800, 600, false},
		{"800px", "600px", 800, 600, false},
		{"1in", "2in", 96, 192, false},
		{"25.4mm", "2.54cm", 96, 96, false},
		{"72pt", "6pc", 96, 96, false},
		{"100%", "100%", 0, 0, true},
		{"", "", 0, 0, true},
		{"0", "10", 0, 0, true},
		{"10furlong", "10", 0, 0, true},
	}
	for _, tt := range tests {
		is := is.New(t)
		s := &Svg{Width: tt.width, Height: tt.height}
		w, h, err := s.Canvas()
		if tt.err {
			is.Err(err)
			is.True(errors.Is(err, ErrNoCanvas))
			continue
		}
		is.NoErr(err)
		is.True(abs(w-tt.w) < 1e-9)
		is.True(abs(h-tt.h) < 1e-9)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
