// Package export writes digitized cross-section paths as CSV, GeoJSON or
// SQLite.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	digitizer "github.com/NilsChudalla/svg-digitizer-for-gempy"
)

// Format is an output format.
type Format string

const (
	CSV     Format = "csv"
	GeoJSON Format = "geojson"
	SQLite  Format = "sqlite"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, GeoJSON, SQLite:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Extension returns the file extension of f, with the dot.
func (f Format) Extension() string {
	if f == SQLite {
		return ".db"
	}
	return "." + string(f)
}

var csvHeader = []string{"X", "Y", "Z", "surface", "id"}

// Surface is the name a path is exported under: its label, or its id when
// it has none.
func Surface(p digitizer.SpatialPath) string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// WriteCSV writes one row per point in the layout of surface point tables:
// X, Y, Z, the surface name and the path id.
func WriteCSV(w io.Writer, paths []digitizer.SpatialPath) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range paths {
		surface := Surface(p)
		for _, c := range p.Coords {
			rec := []string{formatFloat(c.X), formatFloat(c.Y), formatFloat(c.Z), surface, p.ID}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
