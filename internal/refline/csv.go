package refline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// LoadCSV reads the CSV file at path. See ReadCSV.
func LoadCSV(path string) ([]r2.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads vertices from a CSV table in row order. The header names the
// columns: x|easting|lon|lng|longitude and y|northing|lat|latitude, case
// insensitive.
func ReadCSV(r io.Reader) ([]r2.Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxX, idxY := -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "easting", "lon", "lng", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "northing", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return nil, errors.New("csv: x/y columns not found")
	}

	var pts []r2.Point
	for n, row := range recs[1:] {
		x, err := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", n+2, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", n+2, err)
		}
		pts = append(pts, r2.Point{X: x, Y: y})
	}
	return checkVertices(pts)
}
