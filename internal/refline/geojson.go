package refline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang/geo/r2"
)

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type object struct {
	geometry
	Geometry *geometry `json:"geometry"`
	Features []object  `json:"features"`
}

// LoadGeoJSON reads the GeoJSON file at path. See ParseGeoJSON.
func LoadGeoJSON(path string) ([]r2.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON returns the first LineString of a FeatureCollection, Feature
// or bare geometry. The first part of a MultiLineString is accepted too.
func ParseGeoJSON(data []byte) ([]r2.Point, error) {
	var root object
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	pts, ok, err := findLine(root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("geojson: no LineString found")
	}
	return checkVertices(pts)
}

func findLine(o object) ([]r2.Point, bool, error) {
	switch o.Type {
	case "FeatureCollection":
		for _, f := range o.Features {
			if pts, ok, err := findLine(f); ok || err != nil {
				return pts, ok, err
			}
		}
		return nil, false, nil
	case "Feature":
		if o.Geometry == nil {
			return nil, false, nil
		}
		return lineOf(*o.Geometry)
	default:
		return lineOf(o.geometry)
	}
}

func lineOf(g geometry) ([]r2.Point, bool, error) {
	switch g.Type {
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, false, fmt.Errorf("geojson: LineString: %w", err)
		}
		pts, err := toPoints(coords)
		return pts, true, err
	case "MultiLineString":
		var parts [][][]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, false, fmt.Errorf("geojson: MultiLineString: %w", err)
		}
		if len(parts) == 0 {
			return nil, false, nil
		}
		pts, err := toPoints(parts[0])
		return pts, true, err
	}
	return nil, false, nil
}

func toPoints(coords [][]float64) ([]r2.Point, error) {
	pts := make([]r2.Point, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("geojson: position %d has %d values", i, len(c))
		}
		pts = append(pts, r2.Point{X: c[0], Y: c[1]})
	}
	return pts, nil
}
