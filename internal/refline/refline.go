// Package refline loads the map trace of a cross-section from WKT, CSV or
// GeoJSON files.
package refline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// Load reads the vertices of the reference line stored at path. The format
// follows the file extension: .wkt and .txt hold a WKT LINESTRING, .csv a
// table with x and y columns, .geojson and .json a GeoJSON line.
func Load(path string) ([]r2.Point, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wkt", ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(b))
	case ".csv":
		return LoadCSV(path)
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	default:
		return nil, fmt.Errorf("refline: unsupported file type %q", ext)
	}
}

// ParseWKT parses a LINESTRING, with optional Z or M values which are
// ignored.
func ParseWKT(wkt string) ([]r2.Point, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	if !strings.HasPrefix(strings.ToUpper(s), "LINESTRING") {
		return nil, errors.New("unsupported wkt type, want LINESTRING")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, errors.New("wkt linestring: invalid")
	}

	var pts []r2.Point
	for n, tup := range strings.Split(s[i+1:j], ",") {
		parts := strings.Fields(tup)
		if len(parts) < 2 || len(parts) > 4 {
			return nil, fmt.Errorf("wkt linestring: vertex %d: %q", n, strings.TrimSpace(tup))
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("wkt linestring: vertex %d: %w", n, err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("wkt linestring: vertex %d: %w", n, err)
		}
		pts = append(pts, r2.Point{X: x, Y: y})
	}
	return checkVertices(pts)
}

func checkVertices(pts []r2.Point) ([]r2.Point, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("reference line needs at least 2 vertices, got %d", len(pts))
	}
	return pts, nil
}
