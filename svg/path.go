package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"

	gl "github.com/rustyoz/genericlexer"
	"honnef.co/go/curve"
)

// arcTolerance bounds the distance between an elliptical arc and the cubic
// Béziers that approximate it, in user units.
const arcTolerance = 1e-4

// Path is an SVG XML path element
type Path struct {
	Attributes
	D string
}

// Attrs implements the Element interface
func (p *Path) Attrs() *Attributes { return &p.Attributes }

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (p *Path) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "d" && attr.Name.Space == "" {
			p.D = attr.Value
			continue
		}
		p.readAttr(attr)
	}
	return decoder.Skip()
}

// Outline implements the Shape interface by parsing the path description.
func (p *Path) Outline() (curve.BezPath, error) {
	return ParsePathData(p.D)
}

type pathDescriptionParser struct {
	lex  *gl.Lexer
	path curve.BezPath
	// current point, start of the current subpath and the last control
	// point used by the smooth curve commands
	cur, start, ctrl curve.Point
	lastCommand      byte
	// commands and numbers read so far
	tokens int
	// set after closepath until the next drawing command reopens the
	// subpath at its initial point
	pendingMove bool
}

// ParsePathData interprets the d attribute of a path element. Coordinates
// are returned in the element's own user space, no transform is applied.
func ParsePathData(d string) (curve.BezPath, error) {
	norm, want, err := normalizePathData(d)
	if err != nil {
		return nil, fmt.Errorf("path data %q: %w", d, err)
	}
	l, _ := gl.Lex("d", norm)
	pdp := &pathDescriptionParser{lex: l}
	for {
		i := pdp.lex.NextItem()
		switch i.Type {
		case gl.ItemError:
			drain(l)
			return nil, fmt.Errorf("path data %q: %s", d, i.Value)
		case gl.ItemEOS:
			if pdp.tokens != want {
				return nil, fmt.Errorf("path data %q: read %d of %d commands and numbers", d, pdp.tokens, want)
			}
			return pdp.path, nil
		case gl.ItemLetter:
			if len(i.Value) != 1 {
				drain(l)
				return nil, fmt.Errorf("path data %q: unknown command %q", d, i.Value)
			}
			pdp.tokens++
			if err := pdp.parseCommand(i.Value[0]); err != nil {
				drain(l)
				return nil, fmt.Errorf("path data %q: %w", d, err)
			}
		default:
			// separators between commands
		}
	}
}

// drain reads l to its end so that its goroutine can exit.
func drain(l *gl.Lexer) {
	for l.NextItem().Type != gl.ItemEOS {
	}
}

func (pdp *pathDescriptionParser) parseCommand(cmd byte) error {
	if cmd == 'z' || cmd == 'Z' {
		pdp.closePath()
		return nil
	}

	nums, err := parseNumbers(pdp.lex)
	if err != nil {
		return err
	}
	pdp.tokens += len(nums)
	if len(pdp.path) == 0 && cmd != 'M' && cmd != 'm' {
		return fmt.Errorf("command %c before moveto", cmd)
	}

	var arity int
	switch cmd {
	case 'M', 'm', 'L', 'l', 'T', 't':
		arity = 2
	case 'H', 'h', 'V', 'v':
		arity = 1
	case 'C', 'c':
		arity = 6
	case 'S', 's', 'Q', 'q':
		arity = 4
	case 'A', 'a':
		arity = 7
	default:
		return fmt.Errorf("unknown command %c", cmd)
	}
	if len(nums) == 0 || len(nums)%arity != 0 {
		return fmt.Errorf("command %c: expected a multiple of %d numbers, got %d", cmd, arity, len(nums))
	}

	rel := cmd >= 'a'
	for j := 0; j < len(nums); j += arity {
		args := nums[j : j+arity]
		switch cmd {
		case 'M', 'm':
			if j == 0 {
				pdp.moveTo(pdp.point(args[0], args[1], rel))
			} else {
				// subsequent pairs are implicit lineto commands
				pdp.lineTo(pdp.point(args[0], args[1], rel))
			}
		case 'L', 'l':
			pdp.lineTo(pdp.point(args[0], args[1], rel))
		case 'H':
			pdp.lineTo(curve.Pt(args[0], pdp.cur.Y))
		case 'h':
			pdp.lineTo(curve.Pt(pdp.cur.X+args[0], pdp.cur.Y))
		case 'V':
			pdp.lineTo(curve.Pt(pdp.cur.X, args[0]))
		case 'v':
			pdp.lineTo(curve.Pt(pdp.cur.X, pdp.cur.Y+args[0]))
		case 'C', 'c':
			pdp.cubicTo(
				pdp.point(args[0], args[1], rel),
				pdp.point(args[2], args[3], rel),
				pdp.point(args[4], args[5], rel))
		case 'S', 's':
			pdp.cubicTo(
				pdp.reflectedControl('C', 'S'),
				pdp.point(args[0], args[1], rel),
				pdp.point(args[2], args[3], rel))
		case 'Q', 'q':
			pdp.quadTo(pdp.point(args[0], args[1], rel), pdp.point(args[2], args[3], rel))
		case 'T', 't':
			pdp.quadTo(pdp.reflectedControl('Q', 'T'), pdp.point(args[0], args[1], rel))
		case 'A', 'a':
			pdp.arcTo(args[0], args[1], args[2], args[3] != 0, args[4] != 0, pdp.point(args[5], args[6], rel))
		}
		pdp.lastCommand = upper(cmd)
	}
	return nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func (pdp *pathDescriptionParser) point(x, y float64, rel bool) curve.Point {
	if rel {
		return curve.Pt(pdp.cur.X+x, pdp.cur.Y+y)
	}
	return curve.Pt(x, y)
}

// reflectedControl returns the first control point of a smooth curve: the
// reflection of the previous control point if the previous command was of
// the same family, the current point otherwise.
func (pdp *pathDescriptionParser) reflectedControl(families ...byte) curve.Point {
	for _, f := range families {
		if pdp.lastCommand == f {
			return curve.Pt(2*pdp.cur.X-pdp.ctrl.X, 2*pdp.cur.Y-pdp.ctrl.Y)
		}
	}
	return pdp.cur
}

func (pdp *pathDescriptionParser) moveTo(p curve.Point) {
	pdp.path.MoveTo(p)
	pdp.cur, pdp.start, pdp.ctrl = p, p, p
	pdp.pendingMove = false
}

func (pdp *pathDescriptionParser) reopen() {
	if pdp.pendingMove {
		pdp.path.MoveTo(pdp.start)
		pdp.pendingMove = false
	}
}

func (pdp *pathDescriptionParser) lineTo(p curve.Point) {
	pdp.reopen()
	pdp.path.LineTo(p)
	pdp.cur, pdp.ctrl = p, p
}

func (pdp *pathDescriptionParser) quadTo(c, p curve.Point) {
	pdp.reopen()
	pdp.path.QuadTo(c, p)
	pdp.cur, pdp.ctrl = p, c
}

func (pdp *pathDescriptionParser) cubicTo(c1, c2, p curve.Point) {
	pdp.reopen()
	pdp.path.CubicTo(c1, c2, p)
	pdp.cur, pdp.ctrl = p, c2
}

func (pdp *pathDescriptionParser) closePath() {
	if len(pdp.path) == 0 {
		return
	}
	pdp.path.ClosePath()
	pdp.cur, pdp.ctrl = pdp.start, pdp.start
	pdp.lastCommand = 'Z'
	pdp.pendingMove = true
}

// arcTo appends an elliptical arc, converted from SVG endpoint
// parameterization to center parameterization and approximated with cubic
// Béziers.
func (pdp *pathDescriptionParser) arcTo(rx, ry, xRotationDeg float64, large, sweep bool, p curve.Point) {
	p0 := pdp.cur
	if p0 == p {
		return
	}
	arc, ok := centerArc(p0, p, rx, ry, xRotationDeg*math.Pi/180, large, sweep)
	if !ok {
		pdp.lineTo(p)
		return
	}
	pdp.reopen()
	var last curve.Point
	for el := range arc.PathElements(arcTolerance) {
		if el.Kind != curve.CubicToKind {
			continue
		}
		pdp.path.CubicTo(el.P0, el.P1, el.P2)
		last = el.P1
	}
	// land exactly on the requested endpoint
	if n := len(pdp.path); n > 0 && pdp.path[n-1].Kind == curve.CubicToKind {
		pdp.path[n-1].P2 = p
	}
	pdp.cur, pdp.ctrl = p, last
}

// centerArc implements the endpoint to center conversion of the SVG
// implementation notes (F.6.5), including radius correction (F.6.6). It
// reports false for arcs that degenerate to a straight line.
func centerArc(p0, p1 curve.Point, rx, ry, phi float64, large, sweep bool) (curve.Arc, bool) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return curve.Arc{}, false
	}
	sinPhi, cosPhi := math.Sincos(phi)
	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	ux, uy := (x1-cx1)/rx, (y1-cy1)/ry
	vx, vy := (-x1-cx1)/rx, (-y1-cy1)/ry
	start := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if delta == 0 || math.IsNaN(delta) {
		return curve.Arc{}, false
	}

	return curve.Arc{
		Center:     curve.Pt(cx, cy),
		Radii:      curve.Vec(rx, ry),
		StartAngle: start,
		SweepAngle: delta,
		XRotation:  phi,
	}, true
}

// errEmptyGeometry is returned by shapes that describe nothing to draw.
var errEmptyGeometry = errors.New("empty geometry")
