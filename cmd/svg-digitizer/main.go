package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"

	digitizer "github.com/NilsChudalla/svg-digitizer-for-gempy"
	"github.com/NilsChudalla/svg-digitizer-for-gempy/export"
	"github.com/NilsChudalla/svg-digitizer-for-gempy/internal/config"
	"github.com/NilsChudalla/svg-digitizer-for-gempy/internal/refline"
	"github.com/NilsChudalla/svg-digitizer-for-gempy/svg"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("svg-digitizer: ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	svgPtr := flag.String("svg", "", "SVG cross-section sketch")
	refPtr := flag.String("ref", "", "Reference line file (.wkt, .csv, .geojson) or inline WKT LINESTRING")
	zminPtr := flag.Float64("zmin", 0, "Elevation of the bottom edge of the canvas")
	zmaxPtr := flag.Float64("zmax", 0, "Elevation of the top edge of the canvas")
	stepPtr := flag.Float64("step", cfg.Step, "Sampling distance along paths, in pixels")
	geodesicPtr := flag.Bool("geodesic", false, "Reference line is longitude/latitude; measure it in metres on the sphere")
	boundsPtr := flag.String("bounds", cfg.Bounds, "Points outside the canvas (extrapolate, clamp, reject)")
	skipDegeneratePtr := flag.Bool("skip-degenerate", false, "Skip paths of zero length instead of failing")
	skipHiddenPtr := flag.Bool("skip-hidden", false, "Skip paths styled display:none")
	formatPtr := flag.String("format", cfg.Format, "Output format (csv, geojson, sqlite)")
	outputPtr := flag.String("output", "", "Output file (default: stdout, or <svg name>.db for sqlite)")
	noColorPtr := flag.Bool("no-color", cfg.NoColor, "Disable colored output")
	flag.Parse()

	if *svgPtr == "" || *refPtr == "" {
		flag.Usage()
		os.Exit(1)
	}

	bounds, err := digitizer.ParseBoundsPolicy(*boundsPtr)
	if err != nil {
		log.Fatal(err)
	}
	format, err := export.ParseFormat(*formatPtr)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := svg.ParseSvgFile(*svgPtr)
	if err != nil {
		log.Fatal(err)
	}
	ref, err := loadReference(*refPtr, *geodesicPtr)
	if err != nil {
		log.Fatalf("reference line: %v", err)
	}

	opts := digitizer.DefaultOptions()
	opts.Step = *stepPtr
	opts.Bounds = bounds
	opts.SkipDegenerate = *skipDegeneratePtr
	opts.SkipHidden = *skipHiddenPtr

	extent := digitizer.Extent{ZMin: *zminPtr, ZMax: *zmaxPtr}
	paths, err := digitizer.Digitize(doc, ref, extent, opts)
	if err != nil {
		log.Fatal(err)
	}

	dest, err := write(paths, format, *outputPtr, *svgPtr)
	if err != nil {
		log.Fatal(err)
	}

	if *noColorPtr {
		plainStyles()
	}
	fmt.Fprintln(os.Stderr, summary(*svgPtr, dest, ref, extent, paths))
}

// loadReference parses arg as WKT when it is a LINESTRING and reads it as a
// file otherwise.
func loadReference(arg string, geodesic bool) (digitizer.ReferenceCurve, error) {
	var pts []r2.Point
	var err error
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(arg)), "LINESTRING") {
		pts, err = refline.ParseWKT(arg)
	} else {
		pts, err = refline.Load(arg)
	}
	if err != nil {
		return nil, err
	}
	if geodesic {
		return digitizer.NewGeodesic(pts)
	}
	return digitizer.NewPolyline(pts)
}

// write exports paths and returns where they went.
func write(paths []digitizer.SpatialPath, format export.Format, output, svgPath string) (dest string, err error) {
	if format == export.SQLite {
		if output == "" {
			output = strings.TrimSuffix(svgPath, ".svg") + format.Extension()
		}
		return output, export.WriteSQLite(context.Background(), output, paths)
	}

	var w io.Writer = os.Stdout
	dest = "stdout"
	if output != "" {
		f, cerr := os.Create(output)
		if cerr != nil {
			return "", cerr
		}
		defer closeInto(&err, f)
		w, dest = f, output
	}

	switch format {
	case export.CSV:
		err = export.WriteCSV(w, paths)
	case export.GeoJSON:
		err = export.WriteGeoJSON(w, paths)
	}
	return dest, err
}

// closeInto closes c and reports its error through err unless err is
// already set.
func closeInto(err *error, c io.Closer) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func plainStyles() {
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
}

func summary(svgPath, dest string, ref digitizer.ReferenceCurve, extent digitizer.Extent, paths []digitizer.SpatialPath) string {
	var points int
	for _, p := range paths {
		points += len(p.Coords)
	}
	lines := []string{
		titleStyle.Render(svgPath),
		fmt.Sprintf("%s %d", dimStyle.Render("paths "), len(paths)),
		fmt.Sprintf("%s %d", dimStyle.Render("points"), points),
		fmt.Sprintf("%s %.2f", dimStyle.Render("length"), ref.Length()),
		fmt.Sprintf("%s %g .. %g", dimStyle.Render("z     "), extent.ZMin, extent.ZMax),
		fmt.Sprintf("%s %s", dimStyle.Render("output"), dest),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
