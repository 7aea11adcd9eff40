package steric

import (
	"math"
	"sort"

	"github.com/kpotier/sterics/pkg/grid"
	"github.com/kpotier/sterics/pkg/writer"
)

// directions is the number of sampled directions for the Bmin sweep.
// Bmin is the smallest width of the substituent over all orientations
// perpendicular to the axis, so both Sterimol methods minimize the
// envelope's directional support over this many angles.
const directions = 360

var cosT, sinT [directions]float64

func init() {
	for d := 0; d < directions; d++ {
		theta := 2 * math.Pi * float64(d) / directions
		cosT[d] = math.Cos(theta)
		sinT[d] = math.Sin(theta)
	}
}

// CubeSterimol derives the Sterimol parameters from the occupancy field.
// With strip = 0 the whole field is used; a non-zero strip restricts the
// points to the axial band (r-strip, r+strip], which is how a scan
// tabulates the width profile along the axis.
//
// L is the farthest occupied extent along the axis: the occupancy
// already reaches the van der Waals envelope of the terminal atom, so no
// radius correction is added on top. Bmax is the largest radial distance
// from the axis; Bmin is the smallest directional support. A cylinder
// per axial slab is returned for rendering.
func CubeSterimol(f *grid.Field, r, strip float64) (L, Bmax, Bmin float64, cyl []writer.Cylinder) {
	spacing := f.Grid.Spacing
	support := make([]float64, directions)
	slabs := make(map[int]float64)
	any := false

	for i, occ := range f.Occ {
		if !occ {
			continue
		}
		x, y, z := f.Grid.At(i)
		if strip != 0 && (math.Abs(z) > r+strip || math.Abs(z) <= r-strip) {
			continue
		}
		any = true

		if z > L {
			L = z
		}
		rad := math.Hypot(x, y)
		if rad > Bmax {
			Bmax = rad
		}

		slab := int(math.Round(z / spacing))
		if rad > slabs[slab] {
			slabs[slab] = rad
		}

		for d := 0; d < directions; d++ {
			if ext := x*cosT[d] + y*sinT[d]; ext > support[d] {
				support[d] = ext
			}
		}
	}
	if !any {
		return 0, 0, 0, nil
	}

	Bmin = support[0]
	for _, ext := range support[1:] {
		if ext < Bmin {
			Bmin = ext
		}
	}

	keys := make([]int, 0, len(slabs))
	for k := range slabs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		z := float64(k) * spacing
		cyl = append(cyl, writer.Cylinder{R: slabs[k], Z1: z - spacing/2, Z2: z + spacing/2})
	}

	return L, Bmax, Bmin, cyl
}

// ClassicSterimol derives the Sterimol parameters directly from atom
// positions and van der Waals radii, with no grid. The molecule must
// already be aligned with the attachment bond on +z.
func ClassicSterimol(xyz [][3]float64, radii []float64) (L, Bmax, Bmin float64) {
	if len(xyz) == 0 {
		return 0, 0, 0
	}

	support := make([]float64, directions)
	for i, p := range xyz {
		r := radii[i]

		if p[2]+r > L {
			L = p[2] + r
		}
		if b := math.Hypot(p[0], p[1]) + r; b > Bmax {
			Bmax = b
		}

		for d := 0; d < directions; d++ {
			if ext := p[0]*cosT[d] + p[1]*sinT[d] + r; ext > support[d] {
				support[d] = ext
			}
		}
	}

	Bmin = support[0]
	for _, ext := range support[1:] {
		if ext < Bmin {
			Bmin = ext
		}
	}
	if Bmin < 0 {
		Bmin = 0
	}

	return L, Bmax, Bmin
}
