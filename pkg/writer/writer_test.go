package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kpotier/sterics/pkg/mol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXYZ(t *testing.T) {
	t.Parallel()

	m := &mol.Molecule{
		Types: []string{"C", "H"},
		XYZ:   [][3]float64{{0, 0, 0}, {0, 0, 1.09}},
	}
	path := filepath.Join(t.TempDir(), "out.xyz")
	require.NoError(t, XYZ(path, m))

	back, err := mol.ReadXYZ(path, false)
	require.NoError(t, err)
	assert.Equal(t, m.Types, back.Types)
	assert.InDelta(t, 1.09, back.XYZ[1][2], 1e-6)
}

func TestCube(t *testing.T) {
	t.Parallel()

	m := &mol.Molecule{
		Types:   []string{"H"},
		XYZ:     [][3]float64{{0, 0, 0}},
		Density: []float64{1, 2, 3, 4, 5, 6, 7, 8},
		Dims:    [3]int{2, 2, 2},
		Spacing: mol.BohrToAng,
	}
	path := filepath.Join(t.TempDir(), "out.cube")
	require.NoError(t, Cube(path, m))

	back, err := mol.ReadCube(path)
	require.NoError(t, err)
	assert.Equal(t, m.Dims, back.Dims)
	assert.InDelta(t, m.Spacing, back.Spacing, 1e-6)
	assert.InDelta(t, 8, back.Density[7], 1e-6)
}

func TestCubeNoDensity(t *testing.T) {
	t.Parallel()

	m := &mol.Molecule{Types: []string{"H"}, XYZ: [][3]float64{{0, 0, 0}}}
	assert.Error(t, Cube(filepath.Join(t.TempDir(), "out.cube"), m))
}

func TestPyMOL(t *testing.T) {
	t.Parallel()

	m := &mol.Molecule{Types: []string{"H"}, XYZ: [][3]float64{{0, 0, 0}}}
	path := filepath.Join(t.TempDir(), "out.py")
	err := PyMOL(path, "mol.xyz", m, []float64{3.5}, []Cylinder{{R: 1.2, Z1: 0, Z2: 2}}, 0.002)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "SPHERE, 0.000, 0.000, 0.000, 3.500")
	assert.Contains(t, string(b), "CYLINDER")
	assert.Contains(t, string(b), "mol_transf.xyz")
}

func TestScanPlotLengthMismatch(t *testing.T) {
	t.Parallel()

	err := ScanPlot(filepath.Join(t.TempDir(), "out.png"), []float64{1, 2}, []float64{1}, []float64{1, 2})
	assert.Error(t, err)
}
