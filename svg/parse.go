package svg

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// pixelsPer maps absolute SVG length units to CSS pixels.
var pixelsPer = map[string]float64{
	"":   1,
	"px": 1,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"pt": 96.0 / 72,
	"pc": 16,
}

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", i.Value, err)
	}
	return n, nil
}

// consumeSeparators skips the whitespace and commas that may separate
// numbers in path data and point lists.
func consumeSeparators(l *gl.Lexer) {
	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()
}

// parseNumbers reads numbers until the next non-number item.
func parseNumbers(l *gl.Lexer) ([]float64, error) {
	var nums []float64
	for {
		consumeSeparators(l)
		if l.PeekItem().Type != gl.ItemNumber {
			return nums, nil
		}
		n, err := parseNumber(l.NextItem())
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
}

// parseNumberList parses a whitespace and/or comma separated list of numbers
// as found in points, viewBox and transform arguments.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// parseLength converts an absolute SVG length such as "210mm" or "800" to
// pixels.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty length")
	}
	if strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("relative length %q", s)
	}
	i := len(s)
	for i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
		i--
	}
	unit := s[i:]
	scale, ok := pixelsPer[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in length %q", unit, s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return n * scale, nil
}

// splitStyle splits a style attribute into its properties.
func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

// normalizePathData rewrites path data into commands and plain decimal
// numbers separated by single spaces, the form the lexer reads in full. It
// accepts the compact number syntax of SVG: ".5", "1.5.5" as 1.5 and 0.5,
// "-1-2" as -1 and -2, exponents such as "1E2", and arc flags written
// without separators. It also returns the number of commands and numbers
// written.
func normalizePathData(d string) (string, int, error) {
	raw := []byte(d)
	var b strings.Builder
	var tokens int
	var cmd byte
	var arg int
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == ',':
			i++
			continue
		case strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0:
			cmd, arg = c, 0
			b.WriteByte(' ')
			b.WriteByte(c)
			tokens++
			i++
			continue
		}

		if (cmd == 'A' || cmd == 'a') && (arg%7 == 3 || arg%7 == 4) {
			if c != '0' && c != '1' {
				return "", 0, fmt.Errorf("invalid arc flag %q at offset %d", c, i)
			}
			b.WriteByte(' ')
			b.WriteByte(c)
			tokens++
			arg++
			i++
			continue
		}

		n, size := pstrconv.ParseFloat(raw[i:])
		if size == 0 {
			return "", 0, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
		if cmd == 0 {
			return "", 0, errors.New("numbers before the first command")
		}
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return "", 0, fmt.Errorf("number %q out of range", d[i:i+size])
		}
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(n, 'f', -1, 64))
		tokens++
		arg++
		i += size
	}
	return b.String(), tokens, nil
}
