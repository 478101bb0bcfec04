package svg

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"honnef.co/go/curve"
)

// matrix builds the transform of the SVG matrix(a b c d e f) function.
func matrix(a, b, c, d, e, f float64) mt.Transform {
	return mt.Transform{
		{a, c, e},
		{b, d, f},
		{0, 0, 1},
	}
}

func translate(tx, ty float64) mt.Transform { return matrix(1, 0, 0, 1, tx, ty) }

func rotate(deg float64) mt.Transform {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return matrix(cos, sin, -sin, cos, 0, 0)
}

// parseTransform parses the value of a transform attribute. Transform
// functions are composed left to right, as SVG requires.
func parseTransform(s string) (mt.Transform, error) {
	t := mt.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open < 0 || closing < open {
			return t, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : closing])
		if err != nil {
			return t, fmt.Errorf("transform %s: %w", name, err)
		}
		f, err := transformFunc(name, args)
		if err != nil {
			return t, err
		}
		t = mt.MultiplyTransforms(t, f)
		rest = strings.TrimLeft(rest[closing+1:], " ,\t\n\r")
	}
	return t, nil
}

func transformFunc(name string, args []float64) (mt.Transform, error) {
	arity := func(counts ...int) error {
		for _, c := range counts {
			if len(args) == c {
				return nil
			}
		}
		return fmt.Errorf("transform %s: unexpected %d arguments", name, len(args))
	}

	switch name {
	case "matrix":
		if err := arity(6); err != nil {
			return mt.Identity(), err
		}
		return matrix(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case "translate":
		if err := arity(1, 2); err != nil {
			return mt.Identity(), err
		}
		if len(args) == 1 {
			return translate(args[0], 0), nil
		}
		return translate(args[0], args[1]), nil
	case "scale":
		if err := arity(1, 2); err != nil {
			return mt.Identity(), err
		}
		sx, sy := args[0], args[0]
		if len(args) == 2 {
			sy = args[1]
		}
		return matrix(sx, 0, 0, sy, 0, 0), nil
	case "rotate":
		if err := arity(1, 3); err != nil {
			return mt.Identity(), err
		}
		if len(args) == 1 {
			return rotate(args[0]), nil
		}
		cx, cy := args[1], args[2]
		t := mt.MultiplyTransforms(translate(cx, cy), rotate(args[0]))
		return mt.MultiplyTransforms(t, translate(-cx, -cy)), nil
	case "skewX":
		if err := arity(1); err != nil {
			return mt.Identity(), err
		}
		return matrix(1, 0, math.Tan(args[0]*math.Pi/180), 1, 0, 0), nil
	case "skewY":
		if err := arity(1); err != nil {
			return mt.Identity(), err
		}
		return matrix(1, math.Tan(args[0]*math.Pi/180), 0, 1, 0, 0), nil
	default:
		return mt.Identity(), fmt.Errorf("unknown transform %q", name)
	}
}

// applyTransform maps every point of p through t.
func applyTransform(p curve.BezPath, t mt.Transform) curve.BezPath {
	apply := func(pt curve.Point) curve.Point {
		x, y := t.Apply(pt.X, pt.Y)
		return curve.Pt(x, y)
	}
	out := make(curve.BezPath, len(p))
	for i, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			el = curve.MoveTo(apply(el.P0))
		case curve.LineToKind:
			el = curve.LineTo(apply(el.P0))
		case curve.QuadToKind:
			el = curve.QuadTo(apply(el.P0), apply(el.P1))
		case curve.CubicToKind:
			el = curve.CubicTo(apply(el.P0), apply(el.P1), apply(el.P2))
		}
		out[i] = el
	}
	return out
}
