// Package steric computes the steric descriptors of a substituent: the
// percent buried volume around a reference atom and the Sterimol L, Bmin
// and Bmax parameters. The molecular volume comes either from scaled van
// der Waals spheres or from an electron density cube.
package steric

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kpotier/sterics/pkg/grid"
	"github.com/kpotier/sterics/pkg/mol"
	"github.com/kpotier/sterics/pkg/util"
	"github.com/kpotier/sterics/pkg/writer"

	"github.com/pelletier/go-toml"
)

// Type is the type of calculation.
var Type = "steric"

// Defaults applied to parameters left out of the configuration file.
const (
	DefaultGrid     = 0.05
	DefaultRadius   = 3.5
	DefaultIsoval   = 0.002
	DefaultScaleVDW = 1.0
)

// ErrSurface is returned when the requested surface is neither "vdw" nor
// "density".
var ErrSurface = errors.New(`surface must be "vdw" or "density"`)

// ErrSterimol is returned when the requested method is neither "grid"
// nor "classic".
var ErrSterimol = errors.New(`sterimol must be "grid" or "classic"`)

// ErrClassicDensity is returned when the classic Sterimol method is
// requested on a density surface. The classic method needs atom radii,
// which a density has replaced.
var ErrClassicDensity = errors.New("classic sterimol cannot run on a density surface")

// Steric is a structure containing the parameters that can be parsed
// from a TOML configuration file. This structure can be instanced
// through the New method.
//
// Files may contain globs; every match is analyzed independently.
// Surface left empty picks "vdw" for coordinate files and "density" for
// cube files. Scan ("rmin:rmax:step") and ScanD (number of evenly
// distributed intervals over [0, L]) are mutually exclusive and require
// the grid method.
type Steric struct {
	Files   []string `toml:"steric.files"`
	FileOut string   `toml:"steric.file_out"`

	Surface  string  `toml:"steric.surface"`
	Sterimol string  `toml:"steric.sterimol"`
	Grid     float64 `toml:"steric.grid"`
	ScaleVDW float64 `toml:"steric.scale_vdw"`
	Radius   float64 `toml:"steric.radius"`
	Isoval   float64 `toml:"steric.isoval"`

	Scan       string `toml:"steric.scan"`
	ScanD      int    `toml:"steric.scand"`
	Volume     bool   `toml:"steric.volume"`
	VolumeScan bool   `toml:"steric.volume_scan"`

	Center    string   `toml:"steric.center"`
	Ligand    []string `toml:"steric.ligand"`
	Exclude   []int    `toml:"steric.exclude"`
	NoH       bool     `toml:"steric.noh"`
	AddMetals bool     `toml:"steric.add_metals"`

	Timing  bool `toml:"steric.timing"`
	Plot    bool `toml:"steric.plot"`
	NoFiles bool `toml:"steric.no_files"`

	files []string
	log   *log.Logger

	cur int
	mux sync.Mutex
	wg  sync.WaitGroup
}

// New returns an instance of the Steric structure. It reads and parses
// the configuration file given in argument. The file must be a TOML
// file.
func New(path string) (*Steric, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var steric Steric
	dec := toml.NewDecoder(f)
	err = dec.Decode(&steric)
	if err != nil {
		return nil, err
	}

	steric.defaults()
	err = steric.check()
	if err != nil {
		return nil, err
	}

	steric.log = log.New(os.Stdout, "", log.LstdFlags)
	return &steric, nil
}

// SetLogger replaces the logger that receives per-file failures and
// warnings.
func (s *Steric) SetLogger(l *log.Logger) { s.log = l }

func (s *Steric) defaults() {
	if s.Grid == 0 {
		s.Grid = DefaultGrid
	}
	if s.Radius == 0 {
		s.Radius = DefaultRadius
	}
	if s.Isoval == 0 {
		s.Isoval = DefaultIsoval
	}
	if s.ScaleVDW == 0 {
		s.ScaleVDW = DefaultScaleVDW
	}
	if s.Sterimol == "" {
		s.Sterimol = "grid"
	}
}

func (s *Steric) check() error {
	if len(s.Files) == 0 {
		return errors.New("Files must contain at least one path or glob")
	}
	if s.FileOut == "" {
		return errors.New("FileOut must not be empty")
	}
	switch s.Surface {
	case "", "vdw", "density":
	default:
		return fmt.Errorf("%q: %w", s.Surface, ErrSurface)
	}
	switch s.Sterimol {
	case "grid", "classic":
	default:
		return fmt.Errorf("%q: %w", s.Sterimol, ErrSterimol)
	}
	if s.Grid < 0 {
		return errors.New("Grid must be positive")
	}
	if s.Radius < 0 {
		return errors.New("Radius must not be negative")
	}
	if s.Isoval <= 0 {
		return errors.New("Isoval must be positive")
	}
	if s.ScaleVDW <= 0 {
		return errors.New("ScaleVDW must be positive")
	}
	if s.ScanD < 0 {
		return errors.New("ScanD must not be negative")
	}
	if s.Scan != "" && s.ScanD > 0 {
		return errors.New("Scan and ScanD cannot be combined")
	}
	if (s.Scan != "" || s.ScanD > 0) && s.Sterimol != "grid" {
		return errors.New("a scan requires the grid sterimol method")
	}
	if s.Scan != "" {
		_, err := parseScan(s.Scan)
		if err != nil {
			return err
		}
	}
	return nil
}

// Start performs the calculation. It is a thread blocking method. Every
// matched file is analyzed on its own thread; a file that fails is
// logged and skipped, the others are unaffected.
func (s *Steric) Start() error {
	for _, pattern := range s.Files {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("Glob (%s): %w", pattern, err)
		}
		s.files = append(s.files, matches...)
	}
	sort.Strings(s.files)
	if len(s.files) == 0 {
		return errors.New("no input file matches Files")
	}

	out, err := util.Write(s.FileOut, s)
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	defer out.Close()

	s.cur = -1
	for i := 0; i < (runtime.NumCPU() - 1); i++ {
		s.wg.Add(1)
		go s.start(out)
	}

	s.wg.Add(1)
	s.start(out)
	s.wg.Wait()

	return nil
}

func (s *Steric) start(out io.Writer) {
	for {
		s.mux.Lock()
		s.cur++
		if s.cur >= len(s.files) {
			s.mux.Unlock()
			break
		}
		file := s.files[s.cur]
		s.mux.Unlock()

		res, err := s.Analyze(file)
		if err != nil {
			s.log.Println(fmt.Errorf("Analyze (%s): %w", file, err))
			continue
		}

		s.mux.Lock()
		res.write(out, s)
		s.mux.Unlock()
	}

	s.wg.Done()
}

// Analyze runs the full pipeline on one file: read, orient, build the
// occupancy, then derive the descriptors at every requested radius.
func (s *Steric) Analyze(file string) (*Result, error) {
	setup := time.Now()

	m, density, err := s.read(file)
	if err != nil {
		return nil, err
	}
	if density && s.Sterimol == "classic" {
		return nil, ErrClassicDensity
	}
	if !density {
		err = m.ResolveRadii(s.ScaleVDW)
		if err != nil {
			return nil, err
		}
	}

	err = s.orient(m, density)
	if err != nil {
		return nil, err
	}
	if !density {
		s.filter(m)
	}

	var f *grid.Field
	if s.Volume || s.Sterimol == "grid" || density {
		f, err = s.field(m, density)
		if err != nil {
			return nil, err
		}
	}
	setupDur := time.Since(setup)
	calc := time.Now()

	var scan Scan
	switch {
	case s.ScanD > 0:
		l, _, _, _ := CubeSterimol(f, 0, 0)
		scan = evenScan(l, s.ScanD)
	case s.Scan != "":
		scan, err = parseScan(s.Scan)
		if err != nil {
			return nil, err
		}
	default:
		scan = single(s.Radius)
	}

	if s.Volume {
		max := s.Radius
		if s.VolumeScan {
			if last := scan.Rs[len(scan.Rs)-1]; last > max {
				max = last
			}
		}
		f = f.Pad(max)
	}

	res := &Result{
		File:      file,
		Surface:   surfaceName(density),
		HasVolume: s.Volume,
		Scanned:   len(scan.Rs) > 1,
	}

	for j, r := range scan.Rs {
		st := Step{R: r}

		if s.Volume && (j == 0 || s.VolumeScan) {
			vr := s.Radius
			if s.VolumeScan {
				vr = r
			}
			st.BurVol, st.BurShell = BuriedVolume(f, vr, shellHalf(scan.Strip, f.Grid.Spacing))
			res.Spheres = append(res.Spheres, vr)
			if j == 0 {
				res.BurVol, res.BurShell = st.BurVol, st.BurShell
			}
		}

		if s.Sterimol == "classic" {
			st.L, st.Bmax, st.Bmin = ClassicSterimol(m.XYZ, m.Radii)
		} else {
			var cyl []writer.Cylinder
			st.L, st.Bmax, st.Bmin, cyl = CubeSterimol(f, r, scan.Strip)
			res.Cylinders = append(res.Cylinders, cyl...)
		}

		res.Steps = append(res.Steps, st)
		res.Bmins = append(res.Bmins, st.Bmin)
		res.Bmaxs = append(res.Bmaxs, st.Bmax)
	}

	if res.Scanned {
		res.L, _, _, _ = CubeSterimol(f, 0, 0)
	} else {
		last := res.Steps[len(res.Steps)-1]
		res.L, res.Bmin, res.Bmax = last.L, last.Bmin, last.Bmax
	}
	if s.Sterimol == "grid" {
		res.Cylinders = append(res.Cylinders, writer.Cylinder{R: 0.1, Z2: res.L})
	}

	res.Setup = setupDur
	res.Calc = time.Since(calc)

	if !s.NoFiles {
		err = s.export(file, m, density, scan, res)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// read loads the structure and reports whether the occupancy must come
// from a density rather than from van der Waals spheres.
func (s *Steric) read(file string) (*mol.Molecule, bool, error) {
	name := file
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xyz":
		if s.Surface == "density" {
			return nil, false, fmt.Errorf("%s: a density surface needs a cube file", file)
		}
		m, err := mol.ReadXYZ(file, s.NoH)
		return m, false, err
	case ".log", ".out":
		if s.Surface == "density" {
			return nil, false, fmt.Errorf("%s: a density surface needs a cube file", file)
		}
		m, err := mol.ReadLog(file, s.NoH)
		return m, false, err
	case ".cube", ".cub":
		m, err := mol.ReadCube(file)
		if err != nil {
			return nil, false, err
		}
		return m, s.Surface != "vdw", nil
	}
	return nil, false, fmt.Errorf("%s: unsupported file format", file)
}

// orient translates the reference atom to the origin and, for sphere
// surfaces, rotates the attachment bond onto +z. A density lattice is
// fixed by its cube file and is translated only.
func (s *Steric) orient(m *mol.Molecule, density bool) error {
	center := 0
	if s.Center != "" {
		var err error
		center, err = m.Index(s.Center)
		if err != nil {
			return err
		}
	}
	if m.Len() == 0 {
		return errors.New("no atom left to analyze")
	}
	m.Translate(m.XYZ[center])

	if density || m.Len() < 2 {
		return nil
	}

	ligand := s.Ligand
	if len(ligand) == 0 {
		i := 1
		if center == 1 {
			i = 0
		}
		ligand = []string{m.Spec(i)}
	}
	p, err := m.LigandPoint(ligand)
	if err != nil {
		return err
	}
	m.AlignZ(p)
	return nil
}

// filter drops the atoms that must not contribute to the envelope:
// metals (unless requested) and the explicit 1-based exclusion list.
func (s *Steric) filter(m *mol.Molecule) {
	excl := make(map[int]bool, len(s.Exclude))
	for _, n := range s.Exclude {
		if n < 1 || n > m.Len() {
			s.log.Printf("unable to remove atom %d: index out of range (%d atoms)", n, m.Len())
			continue
		}
		excl[n-1] = true
	}

	types := m.Types
	m.Keep(func(i int) bool {
		if excl[i] {
			return false
		}
		if !s.AddMetals && mol.IsMetal(types[i]) {
			return false
		}
		return true
	})
}

func (s *Steric) field(m *mol.Molecule, density bool) (*grid.Field, error) {
	if density {
		g, err := grid.FromDims(m.Origin, m.Dims, m.Spacing)
		if err != nil {
			return nil, err
		}
		return g.OccupiedDensity(m.Density, s.Isoval)
	}

	b := grid.MolBounds(m.XYZ, m.Radii)
	if s.Volume {
		b = b.EnsureRadius(s.Radius, s.Grid)
	}
	g, err := grid.New(b, s.Grid)
	if err != nil {
		return nil, err
	}
	return g.OccupiedVDW(m.XYZ, m.Radii), nil
}

func (s *Steric) export(file string, m *mol.Molecule, density bool, scan Scan, res *Result) error {
	base := file
	if strings.EqualFold(filepath.Ext(base), ".gz") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	err := writer.XYZ(base+"_transf.xyz", m)
	if err != nil {
		return fmt.Errorf("XYZ: %w", err)
	}
	if density {
		err = writer.Cube(base+"_transf.cube", m)
		if err != nil {
			return fmt.Errorf("Cube: %w", err)
		}
	}
	err = writer.PyMOL(base+"_steric.py", file, m, res.Spheres, res.Cylinders, s.Isoval)
	if err != nil {
		return fmt.Errorf("PyMOL: %w", err)
	}
	if s.Plot && res.Scanned {
		err = writer.ScanPlot(base+"_scan.png", scan.Rs, res.Bmins, res.Bmaxs)
		if err != nil {
			return fmt.Errorf("ScanPlot: %w", err)
		}
	}
	return nil
}

func surfaceName(density bool) string {
	if density {
		return "density"
	}
	return "vdw"
}

// Step holds the descriptors evaluated at one radius of a scan.
type Step struct {
	R        float64
	BurVol   float64
	BurShell float64
	Bmin     float64
	Bmax     float64
	L        float64
}

// Result is the outcome of the analysis of one file.
type Result struct {
	File    string
	Surface string

	L    float64
	Bmin float64
	Bmax float64

	BurVol   float64
	BurShell float64

	Steps        []Step
	Bmins, Bmaxs []float64

	HasVolume bool
	Scanned   bool

	Spheres   []float64
	Cylinders []writer.Cylinder

	Setup, Calc time.Duration
}

// write formats the result for the output file. It must be called under
// the calculation mutex.
func (r *Result) write(w io.Writer, s *Steric) {
	fmt.Fprintf(w, "* %s (%s surface)\n", r.File, r.Surface)

	if r.Scanned || r.HasVolume {
		fmt.Fprintf(w, "%8s %10s %10s %10s %10s %10s\n", "R/A", "%V_Bur", "%S_Bur", "Bmin", "Bmax", "L")
		for _, st := range r.Steps {
			fmt.Fprintf(w, "%8.2f %10.2f %10.2f %10.2f %10.2f %10.2f\n",
				st.R, st.BurVol, st.BurShell, st.Bmin, st.Bmax, st.L)
		}
		if r.Scanned {
			fmt.Fprintf(w, "L: %.2f\n", r.L)
		}
	} else {
		fmt.Fprintf(w, "%10s %10s %10s\n", "L", "Bmin", "Bmax")
		fmt.Fprintf(w, "%10.2f %10.2f %10.2f\n", r.L, r.Bmin, r.Bmax)
	}

	if s.Timing {
		fmt.Fprintf(w, "Time (setup): %s\nTime (calc): %s\n", r.Setup, r.Calc)
	}
	fmt.Fprint(w, "\n")
}
