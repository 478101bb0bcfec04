package export

import (
	"encoding/json"
	"io"

	digitizer "github.com/NilsChudalla/svg-digitizer-for-gempy"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Geometry   lineString        `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

type lineString struct {
	Type        string       `json:"type"`
	Coordinates [][3]float64 `json:"coordinates"`
}

// WriteGeoJSON writes paths as a FeatureCollection of 3D LineStrings with
// id, label and surface properties.
func WriteGeoJSON(w io.Writer, paths []digitizer.SpatialPath) error {
	fc := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, len(paths)),
	}
	for _, p := range paths {
		coords := make([][3]float64, len(p.Coords))
		for i, c := range p.Coords {
			coords[i] = [3]float64{c.X, c.Y, c.Z}
		}
		fc.Features = append(fc.Features, feature{
			Type:     "Feature",
			Geometry: lineString{Type: "LineString", Coordinates: coords},
			Properties: map[string]string{
				"id":      p.ID,
				"label":   p.Label,
				"surface": Surface(p),
			},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
