package svg

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"honnef.co/go/curve"
)

// Circle is an SVG circle element. Its outline starts at the rightmost point
// and runs clockwise on screen, as SVG requires.
type Circle struct {
	Attributes
	Cx, Cy, Radius float64
}

// Attrs implements the Element interface
func (c *Circle) Attrs() *Attributes { return &c.Attributes }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (c *Circle) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		var dst *float64
		if attr.Name.Space == "" {
			switch attr.Name.Local {
			case "cx":
				dst = &c.Cx
			case "cy":
				dst = &c.Cy
			case "r":
				dst = &c.Radius
			}
		}
		if dst == nil {
			c.readAttr(attr)
			continue
		}
		v, err := strconv.ParseFloat(attr.Value, 64)
		if err != nil {
			return fmt.Errorf("circle %s: %w", attr.Name.Local, err)
		}
		*dst = v
	}
	return decoder.Skip()
}

// Outline implements the Shape interface
func (c *Circle) Outline() (curve.BezPath, error) {
	if c.Radius <= 0 {
		return nil, errEmptyGeometry
	}
	return curve.Circle{Center: curve.Pt(c.Cx, c.Cy), Radius: c.Radius}.Path(arcTolerance), nil
}
