package mol

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Translate shifts every atom by -p so that p becomes the origin. The
// density lattice origin, when present, is shifted with the atoms.
func (m *Molecule) Translate(p [3]float64) {
	for i := range m.XYZ {
		for k := 0; k < 3; k++ {
			m.XYZ[i][k] -= p[k]
		}
	}
	if m.HasDensity() {
		for k := 0; k < 3; k++ {
			m.Origin[k] -= p[k]
		}
	}
}

// LigandPoint resolves the attachment point the molecule is aligned to.
// One spec is the ligand atom itself; two specs (bidentate) give the
// midpoint between the atoms; three specs (tridentate) give their
// centroid.
func (m *Molecule) LigandPoint(specs []string) ([3]float64, error) {
	var p [3]float64
	if len(specs) < 1 || len(specs) > 3 {
		return p, fmt.Errorf("ligand: expected 1 to 3 atoms, got %d", len(specs))
	}

	for _, spec := range specs {
		i, err := m.Index(spec)
		if err != nil {
			return p, err
		}
		for k := 0; k < 3; k++ {
			p[k] += m.XYZ[i][k]
		}
	}
	for k := 0; k < 3; k++ {
		p[k] /= float64(len(specs))
	}
	return p, nil
}

// AlignZ rotates the molecule about the origin so that p ends up on the
// positive z axis. The x and y directions are arbitrary. Molecules with
// fewer than two atoms are left untouched: there is no bond to align.
//
// Density lattices are not rotated; only the atom coordinates are. Bond
// alignment is therefore exact for vdw surfaces only.
func (m *Molecule) AlignZ(p [3]float64) {
	if m.Len() < 2 {
		return
	}

	norm := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	if norm == 0 {
		return
	}
	v := [3]float64{p[0] / norm, p[1] / norm, p[2] / norm}

	// Rodrigues rotation taking v onto (0,0,1): R = I + K + K^2/(1+c)
	// with K the cross-product matrix of v x z and c their dot product.
	axis := [3]float64{v[1], -v[0], 0}
	c := v[2]

	var rot *mat.Dense
	if axis[0]*axis[0]+axis[1]*axis[1] < 1e-24 {
		if c > 0 {
			return // already on +z
		}
		// v on -z: a half turn about x flips it.
		rot = mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, -1, 0,
			0, 0, -1,
		})
	} else {
		k := mat.NewDense(3, 3, []float64{
			0, -axis[2], axis[1],
			axis[2], 0, -axis[0],
			-axis[1], axis[0], 0,
		})
		var k2 mat.Dense
		k2.Mul(k, k)

		rot = mat.NewDense(3, 3, nil)
		for i := 0; i < 3; i++ {
			rot.Set(i, i, 1)
		}
		rot.Add(rot, k)
		var scaled mat.Dense
		scaled.Scale(1/(1+c), &k2)
		rot.Add(rot, &scaled)
	}

	coords := mat.NewDense(m.Len(), 3, nil)
	for i, xyz := range m.XYZ {
		coords.SetRow(i, xyz[:])
	}

	var out mat.Dense
	out.Mul(coords, rot.T())
	for i := range m.XYZ {
		for k := 0; k < 3; k++ {
			m.XYZ[i][k] = out.At(i, k)
		}
	}
}
