// Package mol contains the molecule model shared by the calculations: the
// element tables, the coordinate and density-cube readers, and the
// alignment of a structure onto its reference bond.
package mol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownElement is returned when a symbol cannot be matched against
// the periodic table at all. Heavy elements that are in the table but have
// no tabulated radius fall back to DefaultVDWRadius instead.
var ErrUnknownElement = errors.New("element is not in the periodic table")

// Molecule is a set of atoms with Cartesian coordinates in Angstrom. The
// three slices Types, XYZ and Radii are parallel; Radii stays nil until
// ResolveRadii is called and for density surfaces.
//
// Structures read from a cube file also carry the volumetric density on a
// regular lattice. Density is stored in cube order: x outermost, z
// fastest, so sample i corresponds to point i of a grid built over the
// same axes.
type Molecule struct {
	Types []string
	XYZ   [][3]float64
	Radii []float64

	Density []float64
	Dims    [3]int
	Origin  [3]float64
	Spacing float64
}

// Len returns the number of atoms.
func (m *Molecule) Len() int { return len(m.Types) }

// HasDensity reports whether a volumetric density was loaded.
func (m *Molecule) HasDensity() bool { return len(m.Density) > 0 }

// ResolveRadii fills Radii from the Bondi table, scaled by scale. Elements
// that are in the periodic table but have no tabulated radius get
// DefaultVDWRadius; "Bq" placeholders get 0. A symbol that is not an
// element at all returns ErrUnknownElement.
func (m *Molecule) ResolveRadii(scale float64) error {
	radii := make([]float64, len(m.Types))
	for i, sym := range m.Types {
		r, ok := VDWRadius(sym)
		if !ok {
			if !InPeriodicTable(sym) {
				return fmt.Errorf("atom %d (%s): %w", i+1, sym, ErrUnknownElement)
			}
			r = DefaultVDWRadius
		}
		radii[i] = r * scale
	}
	m.Radii = radii
	return nil
}

// Keep projects Types, XYZ and Radii through a retained-index filter in a
// single pass. The predicate receives the current 0-based atom index.
func (m *Molecule) Keep(keep func(i int) bool) {
	var retained []int
	for i := range m.Types {
		if keep(i) {
			retained = append(retained, i)
		}
	}
	if len(retained) == len(m.Types) {
		return
	}

	types := make([]string, len(retained))
	xyz := make([][3]float64, len(retained))
	var radii []float64
	if m.Radii != nil {
		radii = make([]float64, len(retained))
	}
	for k, i := range retained {
		types[k] = m.Types[i]
		xyz[k] = m.XYZ[i]
		if radii != nil {
			radii[k] = m.Radii[i]
		}
	}
	m.Types, m.XYZ, m.Radii = types, xyz, radii
}

// Index resolves an atom spec like "C1" or "Pd12" (element symbol
// followed by a 1-based atom number) into a 0-based index. The symbol
// must match the atom at that position.
func (m *Molecule) Index(spec string) (int, error) {
	cut := len(spec)
	for i, r := range spec {
		if r >= '0' && r <= '9' {
			cut = i
			break
		}
	}

	sym := spec[:cut]
	n, err := strconv.Atoi(spec[cut:])
	if err != nil {
		return 0, fmt.Errorf("atom spec %q: %w", spec, err)
	}
	if n < 1 || n > len(m.Types) {
		return 0, fmt.Errorf("atom spec %q: index out of range (%d atoms)", spec, len(m.Types))
	}
	if m.Types[n-1] != sym {
		return 0, fmt.Errorf("atom spec %q: atom %d is %s", spec, n, m.Types[n-1])
	}
	return n - 1, nil
}

// Spec returns the spec string ("C1") of the atom at 0-based index i.
func (m *Molecule) Spec(i int) string {
	return m.Types[i] + strconv.Itoa(i+1)
}

// symbolFromField normalizes an element field of a coordinate file, which
// may be a symbol or an atomic number.
func symbolFromField(field string) (string, error) {
	if z, err := strconv.Atoi(field); err == nil {
		sym := Symbol(z)
		if sym == "" {
			return "", fmt.Errorf("atomic number %d: %w", z, ErrUnknownElement)
		}
		return sym, nil
	}
	sym := strings.ToLower(field)
	return strings.ToUpper(sym[:1]) + sym[1:], nil
}
