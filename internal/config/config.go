// Package config holds the defaults of the command line tool, overridable
// through the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the tool configuration before command line flags are applied.
type Config struct {
	Step    float64
	Bounds  string
	Format  string
	NoColor bool
}

// Load reads SVG_DIGITIZER_STEP, SVG_DIGITIZER_BOUNDS, SVG_DIGITIZER_FORMAT
// and NO_COLOR.
func Load() (*Config, error) {
	step := 1.0
	if s := os.Getenv("SVG_DIGITIZER_STEP"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !(v > 0) {
			return nil, fmt.Errorf("SVG_DIGITIZER_STEP: invalid step %q", s)
		}
		step = v
	}

	bounds := os.Getenv("SVG_DIGITIZER_BOUNDS")
	if bounds == "" {
		bounds = "extrapolate"
	}

	format := os.Getenv("SVG_DIGITIZER_FORMAT")
	if format == "" {
		format = "csv"
	}

	return &Config{
		Step:    step,
		Bounds:  bounds,
		Format:  format,
		NoColor: os.Getenv("NO_COLOR") != "",
	}, nil
}
