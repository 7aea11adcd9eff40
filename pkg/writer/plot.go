package writer

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ScanPlot draws the per-radius Bmin/Bmax width profile of a scan as a
// PNG. The two series must be aligned with rs.
func ScanPlot(path string, rs, bmins, bmaxs []float64) error {
	if len(rs) != len(bmins) || len(rs) != len(bmaxs) {
		return fmt.Errorf("scan plot: series lengths differ (%d, %d, %d)", len(rs), len(bmins), len(bmaxs))
	}

	p := plot.New()
	p.Title.Text = "Sterimol scan"
	p.X.Label.Text = "R (Angstrom)"
	p.Y.Label.Text = "B (Angstrom)"
	p.Legend.Top = true

	min, err := plotter.NewLine(xys(rs, bmins))
	if err != nil {
		return err
	}
	min.Color = color.RGBA{B: 255, A: 255}

	max, err := plotter.NewLine(xys(rs, bmaxs))
	if err != nil {
		return err
	}
	max.Color = color.RGBA{R: 255, A: 255}

	p.Add(min, max)
	p.Legend.Add("Bmin", min)
	p.Legend.Add("Bmax", max)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
