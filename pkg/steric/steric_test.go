package steric

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h2Fixture = `2
hydrogen
H 0.0 0.0 0.0
H 0.0 0.0 1.0
`

const pdhFixture = `2
palladium hydride
Pd 0.0 0.0 0.0
H 0.0 0.0 1.0
`

const cubeFixture = ` density cube
 generated for tests
    1    0.000000    0.000000    0.000000
    2    1.000000    0.000000    0.000000
    2    0.000000    1.000000    0.000000
    2    0.000000    0.000000    1.000000
    1    1.000000    1.000000    0.000000    0.000000
  1.00000E-01  2.00000E-01  3.00000E-01  4.00000E-01  5.00000E-01  6.00000E-01
  7.00000E-01  8.00000E-01
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testSteric() *Steric {
	s := &Steric{Sterimol: "grid", NoFiles: true}
	s.defaults()
	s.log = log.New(io.Discard, "", 0)
	return s
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "cfg.toml", `[steric]
files = ["mol.xyz"]
file_out = "res.txt"
`)
	s, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, DefaultGrid, s.Grid)
	assert.Equal(t, DefaultRadius, s.Radius)
	assert.Equal(t, DefaultIsoval, s.Isoval)
	assert.Equal(t, DefaultScaleVDW, s.ScaleVDW)
	assert.Equal(t, "grid", s.Sterimol)
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no files":     "[steric]\nfile_out = \"res.txt\"\n",
		"no file_out":  "[steric]\nfiles = [\"mol.xyz\"]\n",
		"bad surface":  "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nsurface = \"wireframe\"\n",
		"bad sterimol": "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nsterimol = \"magic\"\n",
		"bad scan":     "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nscan = \"5:2:1\"\n",
		"scan+scand":   "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nscan = \"2:5:1\"\nscand = 4\n",
		"classic scan": "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nsterimol = \"classic\"\nscand = 4\n",
		"bad isoval":   "[steric]\nfiles = [\"a\"]\nfile_out = \"r\"\nisoval = -0.1\n",
	}
	for name, content := range cases {
		name, content := name, content
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := New(writeFile(t, "cfg.toml", content))
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeClassic(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Sterimol = "classic"

	res, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	require.NoError(t, err)

	assert.Equal(t, "vdw", res.Surface)
	assert.False(t, res.Scanned)
	assert.InDelta(t, 2.09, res.L, 1e-9)
	assert.InDelta(t, 1.09, res.Bmax, 1e-9)
	assert.InDelta(t, 1.09, res.Bmin, 1e-3)
	assert.Len(t, res.Steps, 1)
}

func TestAnalyzeGridVolume(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Grid = 0.2
	s.Volume = true

	res, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	require.NoError(t, err)

	assert.True(t, res.HasVolume)
	assert.Greater(t, res.BurVol, 0.0)
	assert.Less(t, res.BurVol, 100.0)
	assert.Zero(t, res.BurShell, "the molecule ends well inside the query sphere")
	assert.Equal(t, []float64{DefaultRadius}, res.Spheres)

	require.NotEmpty(t, res.Cylinders)
	axis := res.Cylinders[len(res.Cylinders)-1]
	assert.InDelta(t, 0.1, axis.R, 1e-12)
	assert.InDelta(t, res.L, axis.Z2, 1e-12)
}

func TestAnalyzeScanD(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Grid = 0.2
	s.ScanD = 4

	res, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	require.NoError(t, err)

	assert.True(t, res.Scanned)
	require.Len(t, res.Steps, 5, "4 intervals make 5 radii")
	assert.InDelta(t, 0, res.Steps[0].R, 1e-12)
	assert.InDelta(t, res.L, res.Steps[4].R, 1e-9, "the last radius is the derived length")
	assert.InDelta(t, 2.09, res.L, 0.4)
	assert.Len(t, res.Bmins, 5)
	assert.Len(t, res.Bmaxs, 5)
}

func TestAnalyzeSinglePointScanRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "h2.xyz", h2Fixture)

	fixed := testSteric()
	fixed.Grid = 0.1
	fixed.Radius = 2
	rf, err := fixed.Analyze(path)
	require.NoError(t, err)

	scan := testSteric()
	scan.Grid = 0.1
	scan.Scan = "2:2:1000"
	rs, err := scan.Analyze(path)
	require.NoError(t, err)

	assert.Equal(t, rf.L, rs.L)
	assert.Equal(t, rf.Bmin, rs.Bmin)
	assert.Equal(t, rf.Bmax, rs.Bmax)
}

func TestAnalyzeDensity(t *testing.T) {
	t.Parallel()

	s := testSteric()
	res, err := s.Analyze(writeFile(t, "dens.cube", cubeFixture))
	require.NoError(t, err)

	assert.Equal(t, "density", res.Surface)
	assert.InDelta(t, 0.529177249, res.L, 1e-9)
}

func TestAnalyzeDensityClassic(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Sterimol = "classic"
	_, err := s.Analyze(writeFile(t, "dens.cube", cubeFixture))
	assert.ErrorIs(t, err, ErrClassicDensity)
}

func TestAnalyzeDensitySurfaceNeedsCube(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Surface = "density"
	_, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	assert.Error(t, err)
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	t.Parallel()

	s := testSteric()
	_, err := s.Analyze(writeFile(t, "mol.pdb", "whatever\n"))
	assert.Error(t, err)
}

func TestAnalyzeMetals(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "pdh.xyz", pdhFixture)

	s := testSteric()
	s.Sterimol = "classic"
	res, err := s.Analyze(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.09, res.Bmax, 1e-9, "metals are dropped by default")

	s = testSteric()
	s.Sterimol = "classic"
	s.AddMetals = true
	res, err = s.Analyze(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.63, res.Bmax, 1e-9, "the Pd sphere now sets the width")
}

func TestAnalyzeExclude(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Sterimol = "classic"
	s.Exclude = []int{2}

	res, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	require.NoError(t, err)
	assert.InDelta(t, 1.09, res.L, 1e-9, "only the first atom is left")
}

func TestAnalyzeExcludeOutOfRange(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := testSteric()
	s.Sterimol = "classic"
	s.Exclude = []int{99}
	s.SetLogger(log.New(&buf, "", 0))

	_, err := s.Analyze(writeFile(t, "h2.xyz", h2Fixture))
	require.NoError(t, err, "a bad exclusion index is a warning, not a failure")
	assert.Contains(t, buf.String(), "unable to remove atom")
}

func TestStart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xyz"), []byte(h2Fixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xyz"), []byte(pdhFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.xyz"), []byte("broken\n"), 0o644))

	s := testSteric()
	s.Sterimol = "classic"
	s.Files = []string{filepath.Join(dir, "*.xyz")}
	s.FileOut = filepath.Join(dir, "res.txt")

	var buf bytes.Buffer
	s.SetLogger(log.New(&buf, "", 0))

	require.NoError(t, s.Start())

	out, err := os.ReadFile(s.FileOut)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Date:")
	assert.Contains(t, string(out), "* "+filepath.Join(dir, "a.xyz"))
	assert.Contains(t, string(out), "* "+filepath.Join(dir, "b.xyz"))
	assert.NotContains(t, string(out), "c.xyz", "the broken file is skipped")
	assert.Contains(t, buf.String(), "c.xyz", "and its failure is logged")
}

func TestStartNoMatch(t *testing.T) {
	t.Parallel()

	s := testSteric()
	s.Files = []string{filepath.Join(t.TempDir(), "*.xyz")}
	s.FileOut = filepath.Join(t.TempDir(), "res.txt")
	assert.Error(t, s.Start())
}
