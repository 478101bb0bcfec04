package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	digitizer "github.com/NilsChudalla/svg-digitizer-for-gempy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

var paths = []digitizer.SpatialPath{
	{
		ID:     "top",
		Label:  "Top of basement",
		Points: []curve.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Coords: []digitizer.Point3{{X: 500000, Y: 4649776, Z: 0}, {X: 500100.5, Y: 4649776, Z: 0}},
	},
	{
		ID:     "no-id",
		Points: []curve.Point{{X: 0, Y: 5}, {X: 10, Y: 5}},
		Coords: []digitizer.Point3{{X: 1, Y: 2, Z: -3.25}, {X: 4, Y: 5, Z: -6}},
	},
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
		ext  string
	}{
		{"csv", CSV, ".csv"},
		{"GeoJSON", GeoJSON, ".geojson"},
		{"sqlite", SQLite, ".db"},
	} {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ext, got.Extension())
	}
	_, err := ParseFormat("shp")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, paths))
	want := "X,Y,Z,surface,id\n" +
		"500000,4649776,0,Top of basement,top\n" +
		"500100.5,4649776,0,Top of basement,top\n" +
		"1,2,-3.25,no-id,no-id\n" +
		"4,5,-6,no-id,no-id\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, paths))

	var fc featureCollection
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	top := fc.Features[0]
	assert.Equal(t, "LineString", top.Geometry.Type)
	assert.Equal(t, [][3]float64{{500000, 4649776, 0}, {500100.5, 4649776, 0}}, top.Geometry.Coordinates)
	assert.Equal(t, "top", top.Properties["id"])
	assert.Equal(t, "Top of basement", top.Properties["surface"])
	assert.Equal(t, "", fc.Features[1].Properties["label"])
}

func TestWriteSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "section.db")
	require.NoError(t, WriteSQLite(ctx, dbPath, paths))
	// a second run appends
	require.NoError(t, WriteSQLite(ctx, dbPath, paths[:1]))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM paths").Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM points").Scan(&n))
	assert.Equal(t, 6, n)

	rows, err := db.Query(`SELECT pt.seq, pt.px, pt.py, pt.x, pt.y, pt.z
		FROM points pt JOIN paths p ON p.pk = pt.path_pk
		WHERE p.pk = (SELECT MIN(pk) FROM paths WHERE id = 'top')
		ORDER BY pt.seq`)
	require.NoError(t, err)
	defer rows.Close()

	var got []digitizer.Point3
	for rows.Next() {
		var seq int
		var px, py float64
		var c digitizer.Point3
		require.NoError(t, rows.Scan(&seq, &px, &py, &c.X, &c.Y, &c.Z))
		assert.Equal(t, paths[0].Points[seq], curve.Pt(px, py))
		got = append(got, c)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, paths[0].Coords, got)
}

func TestWriteSQLiteMismatch(t *testing.T) {
	bad := []digitizer.SpatialPath{{ID: "bad", Points: []curve.Point{{}}, Coords: nil}}
	dbPath := filepath.Join(t.TempDir(), "bad.db")
	require.Error(t, WriteSQLite(context.Background(), dbPath, bad))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM paths").Scan(&n))
	assert.Equal(t, 0, n)
}
