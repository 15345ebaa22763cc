// Package report renders the experiment's comparison plots with gonum/plot.
package report

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/valgap/pkg/errors"
	"github.com/YuminosukeSato/valgap/selection"
)

var (
	validationColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	biasVarianceColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// SaveSweepPlot draws both criteria across the sweep's candidates, in
// evaluation order, and writes the plot to path. The two winners are where
// the blue curve peaks and the red curve bottoms out; the point of the
// figure is that those are usually different candidates.
func SaveSweepPlot(path string, records []selection.Record) error {
	if path == "" {
		return errors.NewValidationError("path", "must not be empty", path)
	}
	if len(records) == 0 {
		return errors.NewValueError("report.SaveSweepPlot", "no records to plot")
	}

	p := plot.New()
	p.Title.Text = "Hyperparameter sweep: validation score vs. bias²+variance"
	p.X.Label.Text = "candidate (evaluation order)"
	p.Y.Label.Text = "criterion value"

	valPts := make(plotter.XYs, len(records))
	bvPts := make(plotter.XYs, len(records))
	for i, rec := range records {
		valPts[i].X = float64(i)
		valPts[i].Y = rec.ValidationScore
		bvPts[i].X = float64(i)
		bvPts[i].Y = rec.BiasVarianceTotal()
	}

	valLine, valMarks, err := plotter.NewLinePoints(valPts)
	if err != nil {
		return errors.Wrap(err, "report.SaveSweepPlot: validation series")
	}
	valLine.Color = validationColor
	valMarks.Color = validationColor
	valMarks.Shape = draw.CircleGlyph{}

	bvLine, bvMarks, err := plotter.NewLinePoints(bvPts)
	if err != nil {
		return errors.Wrap(err, "report.SaveSweepPlot: bias/variance series")
	}
	bvLine.Color = biasVarianceColor
	bvMarks.Color = biasVarianceColor
	bvMarks.Shape = draw.PyramidGlyph{}

	p.Add(valLine, valMarks, bvLine, bvMarks)
	p.Legend.Add("validation R²", valLine, valMarks)
	p.Legend.Add("bias² + variance", bvLine, bvMarks)
	p.Legend.Top = true

	if err := p.Save(9*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report.SaveSweepPlot: save")
	}
	return nil
}

// SaveImportancePlot draws two feature-importance distributions side by side
// as offset bars, one bar pair per feature index, and writes the plot to
// path. With informative features in the leading columns, a well-selected
// model shows mass concentrated on the left.
func SaveImportancePlot(path string, first, second []float64, firstLabel, secondLabel string) error {
	if path == "" {
		return errors.NewValidationError("path", "must not be empty", path)
	}
	if len(first) == 0 {
		return errors.NewValueError("report.SaveImportancePlot", "empty importance slice")
	}
	if len(first) != len(second) {
		return errors.NewDimensionError("report.SaveImportancePlot", len(first), len(second), 1)
	}

	p := plot.New()
	p.Title.Text = "Feature importances of the two selected models"
	p.X.Label.Text = "feature index"
	p.Y.Label.Text = "normalized gain importance"

	width := vg.Points(2)

	firstBars, err := plotter.NewBarChart(plotter.Values(first), width)
	if err != nil {
		return errors.Wrap(err, "report.SaveImportancePlot: first series")
	}
	firstBars.Color = validationColor
	firstBars.LineStyle.Width = 0
	firstBars.Offset = -width / 2

	secondBars, err := plotter.NewBarChart(plotter.Values(second), width)
	if err != nil {
		return errors.Wrap(err, "report.SaveImportancePlot: second series")
	}
	secondBars.Color = biasVarianceColor
	secondBars.LineStyle.Width = 0
	secondBars.Offset = width / 2

	p.Add(firstBars, secondBars)
	p.Legend.Add(firstLabel, firstBars)
	p.Legend.Add(secondLabel, secondBars)
	p.Legend.Top = true

	if err := p.Save(9*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report.SaveImportancePlot: save")
	}
	return nil
}
