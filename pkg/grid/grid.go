// Package grid builds the rectangular lattice of sample points covering a
// molecule and classifies each point as inside or outside the molecular
// volume.
package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bounds is an axis-aligned box in Angstrom.
type Bounds struct {
	Min, Max [3]float64
}

// MolBounds returns the smallest box containing every atom sphere, so the
// scaled van der Waals envelope is always fully enclosed.
func MolBounds(xyz [][3]float64, radii []float64) Bounds {
	var b Bounds
	for i, p := range xyz {
		r := radii[i]
		for k := 0; k < 3; k++ {
			if i == 0 || p[k]-r < b.Min[k] {
				b.Min[k] = p[k] - r
			}
			if i == 0 || p[k]+r > b.Max[k] {
				b.Max[k] = p[k] + r
			}
		}
	}
	return b
}

// EnsureRadius expands the box so that a sphere of radius r centred at
// the origin fits inside it. The expanded extent is rounded up to the
// next spacing multiple so the lattice stays commensurate.
func (b Bounds) EnsureRadius(r, spacing float64) Bounds {
	ext := Round(r, spacing)
	for k := 0; k < 3; k++ {
		if b.Min[k] > -ext {
			b.Min[k] = -ext
		}
		if b.Max[k] < ext {
			b.Max[k] = ext
		}
	}
	return b
}

// Round rounds x up to the nearest multiple of spacing.
func Round(x, spacing float64) float64 {
	return math.Ceil(x/spacing) * spacing
}

// Grid is the outer product of three evenly spaced axis sequences. The
// full point set is addressed by index (x outermost, z fastest) rather
// than materialized, which keeps resizes cheap and matches the sample
// order of cube density files.
type Grid struct {
	X, Y, Z []float64
	Spacing float64
}

// New builds a grid covering b at the given spacing. Each axis gets
// 1 + round((max-min)/spacing) points spanning min and max inclusive; if
// the spacing does not divide the box evenly the point positions are the
// even subdivision of the span, i.e. the box is silently adjusted to the
// nearest representable lattice.
func New(b Bounds, spacing float64) (*Grid, error) {
	if spacing <= 0 {
		return nil, errors.New("grid spacing must be positive")
	}
	g := &Grid{Spacing: spacing}
	for k := 0; k < 3; k++ {
		vals := axis(b.Min[k], b.Max[k], spacing)
		switch k {
		case 0:
			g.X = vals
		case 1:
			g.Y = vals
		case 2:
			g.Z = vals
		}
	}
	return g, nil
}

// FromDims builds the grid matching a density lattice: dims points per
// axis starting at origin, one spacing apart. Grid point i then coincides
// with density sample i.
func FromDims(origin [3]float64, dims [3]int, spacing float64) (*Grid, error) {
	if spacing <= 0 {
		return nil, errors.New("grid spacing must be positive")
	}
	g := &Grid{Spacing: spacing}
	for k := 0; k < 3; k++ {
		if dims[k] < 1 {
			return nil, errors.New("grid needs at least one point per axis")
		}
		max := origin[k] + float64(dims[k]-1)*spacing
		vals := make([]float64, dims[k])
		if dims[k] == 1 {
			vals[0] = origin[k]
		} else {
			floats.Span(vals, origin[k], max)
		}
		switch k {
		case 0:
			g.X = vals
		case 1:
			g.Y = vals
		case 2:
			g.Z = vals
		}
	}
	return g, nil
}

func axis(min, max, spacing float64) []float64 {
	n := 1 + int(math.Round((max-min)/spacing))
	if n < 2 {
		return []float64{min}
	}
	vals := make([]float64, n)
	floats.Span(vals, min, max)
	return vals
}

// Len returns the number of lattice points.
func (g *Grid) Len() int { return len(g.X) * len(g.Y) * len(g.Z) }

// At returns the coordinates of point i.
func (g *Grid) At(i int) (x, y, z float64) {
	nz := len(g.Z)
	ny := len(g.Y)
	return g.X[i/(ny*nz)], g.Y[(i/nz)%ny], g.Z[i%nz]
}
