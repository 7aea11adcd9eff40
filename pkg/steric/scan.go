package steric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrScan is returned for a scan request that cannot be parsed. It is a
// user error and aborts the file's analysis.
var ErrScan = errors.New(`cannot read the scan request, try something like "3:5:0.25"`)

// Scan is a resolved sequence of evaluation radii, ascending, plus the
// strip width the per-radius extraction uses.
type Scan struct {
	Rs    []float64
	Strip float64
}

// single is the fixed-radius mode: one evaluation, no strip.
func single(r float64) Scan {
	return Scan{Rs: []float64{r}}
}

// parseScan resolves a manual "rmin:rmax:step" request into
// 1 + floor((rmax-rmin)/step) evenly spaced radii.
func parseScan(spec string) (Scan, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return Scan{}, fmt.Errorf("%q: %w", spec, ErrScan)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Scan{}, fmt.Errorf("%q: %w", spec, ErrScan)
		}
		v[i] = f
	}
	rmin, rmax, step := v[0], v[1], v[2]
	if rmin < 0 || rmax < rmin || step <= 0 {
		return Scan{}, fmt.Errorf("%q: %w", spec, ErrScan)
	}

	n := 1 + int(math.Floor((rmax-rmin)/step))
	return Scan{Rs: span(rmin, rmax, n), Strip: step}, nil
}

// evenScan distributes n intervals evenly over [0, L]: n+1 radii with a
// strip of L/n.
func evenScan(l float64, n int) Scan {
	return Scan{Rs: span(0, l, n+1), Strip: l / float64(n)}
}

func span(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	rs := make([]float64, n)
	floats.Span(rs, min, max)
	return rs
}
