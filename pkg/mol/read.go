package mol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadXYZ reads a molecule from an xyz file. The element column may
// contain symbols or atomic numbers. Hydrogens are skipped when noH is
// set, which also speeds up the grid steps downstream.
func ReadXYZ(path string, noH bool) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	b, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("atom count: %w", err)
	}
	atoms, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return nil, fmt.Errorf("atom count: %w", err)
	}

	// comment line
	if _, err := r.ReadString('\n'); err != nil {
		return nil, err
	}

	m := &Molecule{}
	for i := 0; i < atoms; i++ {
		b, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}

		fields := strings.Fields(b)
		if len(fields) < 4 {
			return nil, fmt.Errorf("atom %d: expected 4 columns, got %d", i+1, len(fields))
		}

		sym, err := symbolFromField(fields[0])
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}
		if noH && sym == "H" {
			continue
		}

		var xyz [3]float64
		for k := 0; k < 3; k++ {
			xyz[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("atom %d: %w", i+1, err)
			}
		}

		m.Types = append(m.Types, sym)
		m.XYZ = append(m.XYZ, xyz)
	}

	return m, nil
}

// ReadLog reads the last standard-orientation geometry of a
// Gaussian-style output file.
func ReadLog(path string, noH bool) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m *Molecule
	s := bufio.NewScanner(f)
	for s.Scan() {
		if !strings.Contains(s.Text(), "Standard orientation") {
			continue
		}

		// The block header is four lines (two separators around two
		// title lines); the block ends at the next separator.
		for i := 0; i < 4 && s.Scan(); i++ {
		}

		block := &Molecule{}
		for s.Scan() {
			line := s.Text()
			if strings.HasPrefix(strings.TrimSpace(line), "---") {
				break
			}

			fields := strings.Fields(line)
			if len(fields) < 6 {
				return nil, fmt.Errorf("orientation block: expected 6 columns, got %d", len(fields))
			}

			z, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("orientation block: %w", err)
			}
			sym := Symbol(z)
			if sym == "" {
				return nil, fmt.Errorf("atomic number %d: %w", z, ErrUnknownElement)
			}
			if noH && sym == "H" {
				continue
			}

			var xyz [3]float64
			for k := 0; k < 3; k++ {
				xyz[k], err = strconv.ParseFloat(fields[k+3], 64)
				if err != nil {
					return nil, fmt.Errorf("orientation block: %w", err)
				}
			}

			block.Types = append(block.Types, sym)
			block.XYZ = append(block.XYZ, xyz)
		}
		m = block
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%s: no standard orientation block found", path)
	}

	return m, nil
}
