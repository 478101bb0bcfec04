// Package svg reads the drawn features of an SVG sketch: the canvas size
// and, for every path-like element, its identifier, label and outline in
// canvas coordinates.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"honnef.co/go/curve"
)

// InkscapeNamespace is the XML namespace of Inkscape's label and layer
// attributes.
const InkscapeNamespace = "http://www.inkscape.org/namespaces/inkscape"

// DefaultID is assigned to elements without an id attribute.
const DefaultID = "no-id"

// ErrNoCanvas is returned when a document defines neither a usable viewBox
// nor absolute width and height.
var ErrNoCanvas = errors.New("svg: document has no canvas size")

var logger = log.New(os.Stderr, "svg: ", log.LstdFlags)

// Attributes are the attributes shared by all supported elements.
type Attributes struct {
	ID              string
	Label           string
	TransformString string
	Style           string
	GroupMode       string
}

func (a *Attributes) readAttr(attr xml.Attr) {
	switch {
	case attr.Name.Local == "label" && isInkscape(attr.Name.Space):
		a.Label = attr.Value
	case attr.Name.Local == "groupmode" && isInkscape(attr.Name.Space):
		a.GroupMode = attr.Value
	case attr.Name.Space != "":
	case attr.Name.Local == "id":
		a.ID = attr.Value
	case attr.Name.Local == "transform":
		a.TransformString = attr.Value
	case attr.Name.Local == "style":
		a.Style = attr.Value
	}
}

// isInkscape accepts both the resolved namespace and a bare prefix from
// documents that forgot to declare it.
func isInkscape(space string) bool {
	return space == InkscapeNamespace || space == "inkscape"
}

// Hidden reports whether the element is styled display:none.
func (a *Attributes) Hidden() bool {
	return splitStyle(a.Style)["display"] == "none"
}

// Transform returns the element's own transform.
func (a *Attributes) Transform() (mt.Transform, error) {
	if a.TransformString == "" {
		return mt.Identity(), nil
	}
	return parseTransform(a.TransformString)
}

// Element is implemented by every element the reader keeps.
type Element interface {
	Attrs() *Attributes
}

// Shape is an Element with drawable geometry.
type Shape interface {
	Element
	// Outline returns the geometry in the element's own user space.
	Outline() (curve.BezPath, error)
}

// Group represents an SVG group (usually located in a 'g' XML element).
// Inkscape layers are groups with groupmode "layer".
type Group struct {
	Attributes
	Elements []Element
}

// Attrs implements the Element interface
func (g *Group) Attrs() *Attributes { return &g.Attributes }

// IsLayer reports whether the group is an Inkscape layer.
func (g *Group) IsLayer() bool { return g.GroupMode == "layer" }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		g.readAttr(attr)
	}
	elements, err := decodeChildren(decoder)
	if err != nil {
		return fmt.Errorf("error decoding element of Group: %w", err)
	}
	g.Elements = elements
	return nil
}

// newElement returns an empty element for a supported tag, nil otherwise.
func newElement(tag string) Element {
	switch tag {
	case "g":
		return &Group{}
	case "path":
		return &Path{}
	case "polyline":
		return &PolyLine{}
	case "line":
		return &Line{}
	case "circle":
		return &Circle{}
	}
	return nil
}

// decodeChildren decodes the supported child elements up to the end of the
// enclosing element.
func decodeChildren(decoder *xml.Decoder) ([]Element, error) {
	var elements []Element
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			e := newElement(tok.Name.Local)
			if e == nil {
				// defs, metadata, text, images and friends
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if err := decoder.DecodeElement(e, &tok); err != nil {
				return nil, fmt.Errorf("%s: %w", tok.Name.Local, err)
			}
			elements = append(elements, e)

		case xml.EndElement:
			return elements, nil
		}
	}
}

// Svg represents an SVG file and the elements it contains.
type Svg struct {
	Name     string
	Title    string
	Width    string
	Height   string
	ViewBox  string
	Elements []Element
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return fmt.Errorf("root element is %q, not svg", start.Name.Local)
	}
	for _, attr := range start.Attr {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "width":
			s.Width = attr.Value
		case "height":
			s.Height = attr.Value
		case "viewBox":
			s.ViewBox = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "title" {
				if err := decoder.DecodeElement(&s.Title, &tok); err != nil {
					return fmt.Errorf("error decoding title: %w", err)
				}
				continue
			}
			e := newElement(tok.Name.Local)
			if e == nil {
				if err := decoder.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := decoder.DecodeElement(e, &tok); err != nil {
				return fmt.Errorf("error decoding element of SVG struct: %w", err)
			}
			s.Elements = append(s.Elements, e)

		case xml.EndElement:
			return nil
		}
	}
}

// ParseSvg parses an SVG string into an SVG struct
func ParseSvg(str string, name string) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string) (*Svg, error) {
	svg := Svg{Name: name}
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %w", err)
	}
	return &svg, nil
}

// ParseSvgFile opens and parses the SVG file at path.
func ParseSvgFile(path string) (*Svg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSvgFromReader(f, path)
}

// viewBox returns min-x, min-y, width and height of the viewBox attribute.
func (s *Svg) viewBox() ([4]float64, bool, error) {
	var vb [4]float64
	if strings.TrimSpace(s.ViewBox) == "" {
		return vb, false, nil
	}
	nums, err := parseNumberList(s.ViewBox)
	if err != nil {
		return vb, false, fmt.Errorf("viewBox: %w", err)
	}
	if len(nums) != 4 {
		return vb, false, fmt.Errorf("viewBox: expected 4 numbers, got %d", len(nums))
	}
	copy(vb[:], nums)
	return vb, true, nil
}

// Canvas returns the size of the drawing area in user units, the units
// feature coordinates are expressed in. The viewBox takes precedence; without
// one, the absolute width and height are converted to pixels.
func (s *Svg) Canvas() (width, height float64, err error) {
	vb, ok, err := s.viewBox()
	if err != nil {
		return 0, 0, err
	}
	if ok {
		width, height = vb[2], vb[3]
	} else {
		if width, err = parseLength(s.Width); err != nil {
			return 0, 0, fmt.Errorf("%w: width: %v", ErrNoCanvas, err)
		}
		if height, err = parseLength(s.Height); err != nil {
			return 0, 0, fmt.Errorf("%w: height: %v", ErrNoCanvas, err)
		}
	}
	if !(width > 0) || !(height > 0) {
		return 0, 0, fmt.Errorf("%w: %gx%g", ErrNoCanvas, width, height)
	}
	return width, height, nil
}

// Feature is a drawn element flattened into canvas coordinates.
type Feature struct {
	ID    string
	Label string
	// Layer is the label of the innermost enclosing Inkscape layer.
	Layer  string
	Hidden bool
	Path   curve.BezPath
}

// Features returns every shape of the document in document order, with all
// ancestor transforms applied and the viewBox origin moved to (0, 0).
// Shapes without geometry are skipped.
func (s *Svg) Features() ([]Feature, error) {
	root := mt.Identity()
	vb, ok, err := s.viewBox()
	if err != nil {
		return nil, err
	}
	if ok {
		root = translate(-vb[0], -vb[1])
	}

	var features []Feature
	err = walk(s.Elements, root, "", false, func(e Shape, t mt.Transform, layer string, hidden bool) error {
		outline, err := e.Outline()
		if errors.Is(err, errEmptyGeometry) || (err == nil && len(outline) == 0) {
			logger.Printf("%s: skipping %s without geometry", s.Name, idOf(e))
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", idOf(e), err)
		}
		a := e.Attrs()
		features = append(features, Feature{
			ID:     idOf(e),
			Label:  a.Label,
			Layer:  layer,
			Hidden: hidden,
			Path:   applyTransform(outline, t),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

func idOf(e Element) string {
	if id := e.Attrs().ID; id != "" {
		return id
	}
	return DefaultID
}

func walk(elements []Element, parent mt.Transform, layer string, hidden bool, fn func(Shape, mt.Transform, string, bool) error) error {
	for _, e := range elements {
		a := e.Attrs()
		own, err := a.Transform()
		if err != nil {
			return fmt.Errorf("%s: %w", idOf(e), err)
		}
		t := mt.MultiplyTransforms(parent, own)
		h := hidden || a.Hidden()

		switch e := e.(type) {
		case *Group:
			l := layer
			if e.IsLayer() {
				l = e.Label
			}
			if err := walk(e.Elements, t, l, h, fn); err != nil {
				return err
			}
		case Shape:
			if err := fn(e, t, layer, h); err != nil {
				return err
			}
		}
	}
	return nil
}
