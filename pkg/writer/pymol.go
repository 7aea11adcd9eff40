package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpotier/sterics/pkg/mol"
)

// PyMOL writes a .py script that loads the analyzed structure into PyMOL
// and draws the sphere and cylinder primitives produced by the engine.
// Spheres are origin-centred radii (the volume query surfaces); cylinders
// are the occupancy slabs plus the L axis bar. For density surfaces the
// script also loads the isodensity surface at the given isovalue.
func PyMOL(path, input string, m *mol.Molecule, spheres []float64, cylinders []Cylinder, isoval float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "from pymol.cgo import *\nfrom pymol import cmd\n\n")

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if m.HasDensity() {
		fmt.Fprintf(w, "cmd.load('%s')\n", filepath.Base(input))
		fmt.Fprintf(w, "cmd.isosurface('dens', '%s', %g)\n\n", base, isoval)
	} else {
		fmt.Fprintf(w, "cmd.load('%s_transf.xyz')\n\n", base)
	}

	fmt.Fprint(w, "obj = [\n")
	for _, r := range spheres {
		fmt.Fprintf(w, "   SPHERE, 0.000, 0.000, 0.000, %5.3f,\n", r)
	}
	for _, c := range cylinders {
		fmt.Fprintf(w, "   CYLINDER, 0., 0., %5.3f, 0., 0., %5.3f, %5.3f, 1.0, 1.0, 1.0, 0., 0.0, 1.0,\n",
			c.Z1, c.Z2, c.R)
	}
	fmt.Fprint(w, "]\n\ncmd.load_cgo(obj, 'sterics')\n")
	fmt.Fprint(w, "cmd.set('cgo_transparency', 0.5, 'sterics')\n")

	return w.Flush()
}
