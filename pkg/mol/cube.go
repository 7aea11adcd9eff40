package mol

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ReadCube reads a Gaussian cube file holding an electron density on a
// regular lattice. Lengths are converted from Bohr to Angstrom. Files
// ending in .gz are decompressed on the fly.
//
// Only axis-aligned lattices with a uniform spacing are supported: the
// sterics grid is rebuilt over the cube axes and the density is consumed
// sample by sample, so a skewed lattice cannot be mapped onto it.
func ReadCube(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	br := bufio.NewReader(r)
	// two comment lines
	for i := 0; i < 2; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, err
		}
	}

	atoms, origin, err := cubeHeaderLine(br)
	if err != nil {
		return nil, fmt.Errorf("origin line: %w", err)
	}
	// A negative atom count flags a molecular-orbital cube.
	if atoms < 0 {
		atoms = -atoms
	}

	m := &Molecule{}
	for k := 0; k < 3; k++ {
		m.Origin[k] = origin[k] * BohrToAng
	}

	var spacing [3]float64
	for k := 0; k < 3; k++ {
		n, vec, err := cubeHeaderLine(br)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", k, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("axis %d: %d voxels", k, n)
		}
		for j := 0; j < 3; j++ {
			if j != k && math.Abs(vec[j]) > 1e-8 {
				return nil, fmt.Errorf("axis %d: lattice is not axis-aligned", k)
			}
		}
		m.Dims[k] = n
		spacing[k] = vec[k] * BohrToAng
	}
	if math.Abs(spacing[0]-spacing[1]) > 1e-6 || math.Abs(spacing[0]-spacing[2]) > 1e-6 {
		return nil, fmt.Errorf("voxel spacing is not uniform: %v", spacing)
	}
	m.Spacing = spacing[0]

	for i := 0; i < atoms; i++ {
		b, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}
		fields := strings.Fields(b)
		if len(fields) < 5 {
			return nil, fmt.Errorf("atom %d: expected 5 columns, got %d", i+1, len(fields))
		}

		z, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}
		sym := Symbol(z)
		if sym == "" {
			return nil, fmt.Errorf("atomic number %d: %w", z, ErrUnknownElement)
		}

		var xyz [3]float64
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k+2], 64)
			if err != nil {
				return nil, fmt.Errorf("atom %d: %w", i+1, err)
			}
			xyz[k] = v * BohrToAng
		}

		m.Types = append(m.Types, sym)
		m.XYZ = append(m.XYZ, xyz)
	}

	total := m.Dims[0] * m.Dims[1] * m.Dims[2]
	m.Density = make([]float64, 0, total)
	for {
		b, err := br.ReadString('\n')
		for _, field := range strings.Fields(b) {
			v, errp := strconv.ParseFloat(field, 64)
			if errp != nil {
				return nil, fmt.Errorf("density value %d: %w", len(m.Density)+1, errp)
			}
			m.Density = append(m.Density, v)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(m.Density) != total {
		return nil, fmt.Errorf("density: got %d values, expected %d", len(m.Density), total)
	}

	return m, nil
}

// cubeHeaderLine parses an "int followed by three floats" cube header
// line.
func cubeHeaderLine(r *bufio.Reader) (int, [3]float64, error) {
	var vec [3]float64

	b, err := r.ReadString('\n')
	if err != nil {
		return 0, vec, err
	}
	fields := strings.Fields(b)
	if len(fields) < 4 {
		return 0, vec, fmt.Errorf("expected 4 columns, got %d", len(fields))
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, vec, err
	}
	for k := 0; k < 3; k++ {
		vec[k], err = strconv.ParseFloat(fields[k+1], 64)
		if err != nil {
			return 0, vec, err
		}
	}
	return n, vec, nil
}
