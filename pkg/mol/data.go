package mol

// Conversion factor between Bohr and Angstrom. Cube files are in Bohr.
const BohrToAng = 0.529177249

// DefaultVDWRadius is used for heavy elements that have no tabulated
// Bondi radius.
const DefaultVDWRadius = 2.0

// IsovalH is the reference isodensity value for hydrogen-dominated
// surfaces. It is not applied automatically; the default cutoff is set by
// the steric package.
const IsovalH = 0.00475

// Bondi van der Waals radii in Angstrom, taken from J. Phys. Chem. 1964,
// 68, 441 and J. Phys. Chem. A 2009, 103, 5806. "Bq" is the ghost-atom
// placeholder.
var bondi = map[string]float64{
	"Bq": 0.00, "H": 1.09, "He": 1.40,
	"Li": 1.81, "Be": 1.53, "B": 1.92, "C": 1.70, "N": 1.55, "O": 1.52, "F": 1.47, "Ne": 1.54,
	"Na": 2.27, "Mg": 1.73, "Al": 1.84, "Si": 2.10, "P": 1.80, "S": 1.80, "Cl": 1.75, "Ar": 1.88,
	"K": 2.75, "Ca": 2.31, "Ni": 1.63, "Cu": 1.40, "Zn": 1.39, "Ga": 1.87, "Ge": 2.11, "As": 1.85, "Se": 1.90, "Br": 1.83, "Kr": 2.02,
	"Rb": 3.03, "Sr": 2.49, "Pd": 1.63, "Ag": 1.72, "Cd": 1.58, "In": 1.93, "Sn": 2.17, "Sb": 2.06, "Te": 2.06, "I": 1.98, "Xe": 2.16,
	"Cs": 3.43, "Ba": 2.68, "Pt": 1.72, "Au": 1.66, "Hg": 1.55, "Tl": 1.96, "Pb": 2.02, "Bi": 2.07, "Po": 1.97, "At": 2.02, "Rn": 2.20,
	"Fr": 3.48, "Ra": 2.83, "U": 1.86,
}

// periodicTable maps atomic numbers to element symbols. Index 0 is the
// empty symbol so that Z can be used directly as an index.
var periodicTable = []string{"", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og"}

// metals are excluded from the steric analysis unless requested otherwise.
var metals = map[string]bool{}

func init() {
	list := []string{"Li", "Be", "Na", "Mg", "Al", "K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga",
		"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
		"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
		"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg", "Tl", "Pb", "Bi", "Po",
		"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
		"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn", "Fl", "Lv"}
	for _, m := range list {
		metals[m] = true
	}
}

// Symbol returns the element symbol for an atomic number, or an empty
// string if z is out of range.
func Symbol(z int) string {
	if z < 1 || z >= len(periodicTable) {
		return ""
	}
	return periodicTable[z]
}

// InPeriodicTable reports whether sym is a known element symbol or the
// "Bq" placeholder.
func InPeriodicTable(sym string) bool {
	if sym == "Bq" {
		return true
	}
	for _, s := range periodicTable[1:] {
		if s == sym {
			return true
		}
	}
	return false
}

// IsMetal reports whether sym is in the metals list.
func IsMetal(sym string) bool { return metals[sym] }

// VDWRadius returns the tabulated Bondi radius for sym. The boolean
// reports whether a tabulated value exists; callers decide the fallback.
func VDWRadius(sym string) (float64, bool) {
	r, ok := bondi[sym]
	return r, ok
}
