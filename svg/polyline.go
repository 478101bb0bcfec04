package svg

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"honnef.co/go/curve"
)

// PolyLine is an SVG polyline element: a set of connected line segments.
type PolyLine struct {
	Attributes
	Points string
}

// Attrs implements the Element interface
func (p *PolyLine) Attrs() *Attributes { return &p.Attributes }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (p *PolyLine) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "points" && attr.Name.Space == "" {
			p.Points = attr.Value
			continue
		}
		p.readAttr(attr)
	}
	return decoder.Skip()
}

// Outline implements the Shape interface
func (p *PolyLine) Outline() (curve.BezPath, error) {
	nums, err := parseNumberList(p.Points)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	if len(nums) == 0 {
		return nil, errEmptyGeometry
	}
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("points: odd number of coordinates (%d)", len(nums))
	}
	var path curve.BezPath
	path.MoveTo(curve.Pt(nums[0], nums[1]))
	for i := 2; i < len(nums); i += 2 {
		path.LineTo(curve.Pt(nums[i], nums[i+1]))
	}
	return path, nil
}

// Line is an SVG line element.
type Line struct {
	Attributes
	X1, Y1, X2, Y2 float64
}

// Attrs implements the Element interface
func (l *Line) Attrs() *Attributes { return &l.Attributes }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (l *Line) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		var dst *float64
		if attr.Name.Space == "" {
			switch attr.Name.Local {
			case "x1":
				dst = &l.X1
			case "y1":
				dst = &l.Y1
			case "x2":
				dst = &l.X2
			case "y2":
				dst = &l.Y2
			}
		}
		if dst == nil {
			l.readAttr(attr)
			continue
		}
		v, err := strconv.ParseFloat(attr.Value, 64)
		if err != nil {
			return fmt.Errorf("line %s: %w", attr.Name.Local, err)
		}
		*dst = v
	}
	return decoder.Skip()
}

// Outline implements the Shape interface
func (l *Line) Outline() (curve.BezPath, error) {
	var path curve.BezPath
	path.MoveTo(curve.Pt(l.X1, l.Y1))
	path.LineTo(curve.Pt(l.X2, l.Y2))
	return path, nil
}
