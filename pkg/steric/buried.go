package steric

import "github.com/kpotier/sterics/pkg/grid"

// BuriedVolume integrates the occupancy inside a sphere of radius r
// centred at the origin and inside a thin shell at its surface. Both
// results are percentages: occupied points over all lattice points in
// the region. The shell spans r +- halfShell.
//
// r = 0 (or any region holding no lattice point) has an empty
// denominator; the guarded result is 0 rather than a division by zero.
func BuriedVolume(f *grid.Field, r, halfShell float64) (vol, shell float64) {
	if r <= 0 {
		return 0, 0
	}

	r2 := r * r
	lo := r - halfShell
	lo2 := lo * lo
	hi2 := (r + halfShell) * (r + halfShell)

	var inSphere, occSphere, inShell, occShell int
	for i, occ := range f.Occ {
		x, y, z := f.Grid.At(i)
		d2 := x*x + y*y + z*z

		if d2 <= r2 {
			inSphere++
			if occ {
				occSphere++
			}
		}
		if halfShell > 0 && d2 <= hi2 && (lo <= 0 || d2 >= lo2) {
			inShell++
			if occ {
				occShell++
			}
		}
	}

	if inSphere > 0 {
		vol = 100 * float64(occSphere) / float64(inSphere)
	}
	if inShell > 0 {
		shell = 100 * float64(occShell) / float64(inShell)
	}
	return vol, shell
}

// shellHalf picks the shell half-thickness: half the scan strip when
// scanning, one grid spacing otherwise so the shell never degenerates to
// an empty set.
func shellHalf(strip, spacing float64) float64 {
	if strip > 0 {
		return strip / 2
	}
	return spacing
}
