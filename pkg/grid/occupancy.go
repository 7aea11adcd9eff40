package grid

import (
	"fmt"
	"math"
)

// Field is the occupancy of every grid point: true when the point lies
// inside the molecular volume. It is derived data, valid only for the
// grid it was computed against.
type Field struct {
	Grid *Grid
	Occ  []bool
}

// OccupiedVDW classifies each grid point against the scaled van der
// Waals spheres: a point is occupied when its distance to at least one
// atom centre is less than or equal to that atom's radius. Boundary ties
// count as occupied.
//
// The comparison runs whole-axis-at-a-time: per-axis squared distances
// are precomputed once per atom and planes or rows outside the sphere
// are pruned before the innermost loop touches any point.
func (g *Grid) OccupiedVDW(xyz [][3]float64, radii []float64) *Field {
	nx, ny, nz := len(g.X), len(g.Y), len(g.Z)
	occ := make([]bool, nx*ny*nz)

	dx2 := make([]float64, nx)
	dy2 := make([]float64, ny)
	dz2 := make([]float64, nz)

	for a, p := range xyz {
		r2 := radii[a] * radii[a]
		if r2 == 0 {
			continue
		}
		for i, x := range g.X {
			d := x - p[0]
			dx2[i] = d * d
		}
		for j, y := range g.Y {
			d := y - p[1]
			dy2[j] = d * d
		}
		for k, z := range g.Z {
			d := z - p[2]
			dz2[k] = d * d
		}

		for i := 0; i < nx; i++ {
			if dx2[i] > r2 {
				continue
			}
			for j := 0; j < ny; j++ {
				dxy := dx2[i] + dy2[j]
				if dxy > r2 {
					continue
				}
				row := (i*ny + j) * nz
				for k := 0; k < nz; k++ {
					if !occ[row+k] && dxy+dz2[k] <= r2 {
						occ[row+k] = true
					}
				}
			}
		}
	}

	return &Field{Grid: g, Occ: occ}
}

// OccupiedDensity classifies each grid point by its density sample: a
// point is occupied when the density lies strictly above the isovalue.
// The samples must be aligned 1:1 with the grid points (see FromDims).
func (g *Grid) OccupiedDensity(dens []float64, isoval float64) (*Field, error) {
	if len(dens) != g.Len() {
		return nil, fmt.Errorf("density has %d samples, grid has %d points", len(dens), g.Len())
	}
	occ := make([]bool, len(dens))
	for i, d := range dens {
		occ[i] = d > isoval
	}
	return &Field{Grid: g, Occ: occ}, nil
}

// Pad grows the lattice with unoccupied points until a sphere of radius
// r centred at the origin fits inside it, keeping the existing points
// where they are. Density lattices are fixed by their cube file, so this
// is how a larger volume query is accommodated in density mode.
func (f *Field) Pad(r float64) *Field {
	g := f.Grid
	sp := g.Spacing
	ext := Round(r, sp)

	axes := [3][]float64{g.X, g.Y, g.Z}
	var lo, n [3]int
	grow := false
	for k, axis := range axes {
		lo[k] = 0
		if d := axis[0] + ext; d > 1e-9 {
			lo[k] = int(math.Ceil(d / sp))
		}
		hi := 0
		if d := ext - axis[len(axis)-1]; d > 1e-9 {
			hi = int(math.Ceil(d / sp))
		}
		n[k] = lo[k] + len(axis) + hi
		if lo[k] > 0 || hi > 0 {
			grow = true
		}
	}
	if !grow {
		return f
	}

	var origin [3]float64
	for k, axis := range axes {
		origin[k] = axis[0] - float64(lo[k])*sp
	}
	ng, err := FromDims(origin, n, sp)
	if err != nil {
		return f
	}

	occ := make([]bool, ng.Len())
	nyz := len(g.Y) * len(g.Z)
	for i, o := range f.Occ {
		if !o {
			continue
		}
		ix := i/nyz + lo[0]
		iy := (i/len(g.Z))%len(g.Y) + lo[1]
		iz := i%len(g.Z) + lo[2]
		occ[(ix*n[1]+iy)*n[2]+iz] = true
	}
	return &Field{Grid: ng, Occ: occ}
}

// Count returns the number of occupied points.
func (f *Field) Count() int {
	n := 0
	for _, o := range f.Occ {
		if o {
			n++
		}
	}
	return n
}

// Points extracts the coordinates of the occupied points.
func (f *Field) Points() [][3]float64 {
	pts := make([][3]float64, 0, f.Count())
	for i, o := range f.Occ {
		if o {
			x, y, z := f.Grid.At(i)
			pts = append(pts, [3]float64{x, y, z})
		}
	}
	return pts
}
