// Package writer emits the artifacts of an analysis that are not part of
// the numeric contract: the translated structure, the re-serialized
// density cube, a PyMOL visualization script and the scan profile plot.
package writer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kpotier/sterics/pkg/mol"
)

// Cylinder is a render primitive handed over by the steric engine: one
// axial slab of the occupancy envelope, or the axis bar itself.
type Cylinder struct {
	R, Z1, Z2 float64
}

// XYZ writes the (translated, rotated) structure as an xyz file.
func XYZ(path string, m *mol.Molecule) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n\n", m.Len())
	for i, p := range m.XYZ {
		fmt.Fprintf(w, "%-3s %12.6f %12.6f %12.6f\n", m.Types[i], p[0], p[1], p[2])
	}
	return w.Flush()
}

// Cube re-serializes the density lattice after translation, back in
// Bohr. The two comment lines record the tool that wrote the file.
func Cube(path string, m *mol.Molecule) error {
	if !m.HasDensity() {
		return fmt.Errorf("%s: molecule carries no density", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "translated density cube\nwritten by sterics\n")
	fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f\n", m.Len(),
		m.Origin[0]/mol.BohrToAng, m.Origin[1]/mol.BohrToAng, m.Origin[2]/mol.BohrToAng)

	inc := m.Spacing / mol.BohrToAng
	for k := 0; k < 3; k++ {
		var v [3]float64
		v[k] = inc
		fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f\n", m.Dims[k], v[0], v[1], v[2])
	}

	for i, p := range m.XYZ {
		z := atomicNumber(m.Types[i])
		fmt.Fprintf(w, "%5d %11.6f %11.6f %11.6f %11.6f\n", z, float64(z),
			p[0]/mol.BohrToAng, p[1]/mol.BohrToAng, p[2]/mol.BohrToAng)
	}

	for i, d := range m.Density {
		fmt.Fprintf(w, " %12.5E", d)
		if (i+1)%6 == 0 {
			fmt.Fprint(w, "\n")
		}
	}
	if len(m.Density)%6 != 0 {
		fmt.Fprint(w, "\n")
	}
	return w.Flush()
}

func atomicNumber(sym string) int {
	for z := 1; ; z++ {
		s := mol.Symbol(z)
		if s == "" {
			return 0
		}
		if s == sym {
			return z
		}
	}
}
