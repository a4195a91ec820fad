package main

import (
	"image/color"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

const plotPoints = 200

var (
	plotDataPath string
	plotOutPath  string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the posterior mean and a two sigma band of a 1-D model",
	Long: `Fits a Gaussian process to a CSV file with one input column and renders
the posterior mean, a ±2σ band and the training points. The output format
follows the file extension (png, svg, pdf).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		inputs, outputs, err := readDataset(plotDataPath)
		if err != nil {
			return err
		}
		model, err := train(cfg, inputs, outputs)
		if err != nil {
			return err
		}
		p, err := posteriorPlot(model, inputs, outputs)
		if err != nil {
			return err
		}
		return p.Save(8*vg.Inch, 5*vg.Inch, plotOutPath)
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotDataPath, "data", "", "CSV dataset with one input column and an output column")
	plotCmd.Flags().StringVar(&plotOutPath, "out", "posterior.png", "output image")
	_ = plotCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(plotCmd)
}

func posteriorPlot(model *trainedModel, inputs [][]float64, outputs []float64) (*plot.Plot, error) {
	if model.NumFeatures() != 1 {
		return nil, errors.NewValueError("plot", "only one dimensional inputs can be plotted")
	}

	xs := make([]float64, len(inputs))
	for i, row := range inputs {
		xs[i] = row[0]
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	margin := 0.1 * (hi - lo)
	if margin == 0 {
		margin = 1
	}

	grid := make([]float64, plotPoints)
	floats.Span(grid, lo-margin, hi+margin)
	queries := make([][]float64, plotPoints)
	for i, x := range grid {
		queries[i] = []float64{x}
	}
	queries, err := model.scale(queries)
	if err != nil {
		return nil, err
	}
	means, err := model.PredictSeveral(queries)
	if err != nil {
		return nil, err
	}
	variances, err := model.PredictVarianceSeveral(queries)
	if err != nil {
		return nil, err
	}

	meanXY := make(plotter.XYs, plotPoints)
	band := make(plotter.XYs, 2*plotPoints)
	for i, x := range grid {
		sd := 2 * math.Sqrt(variances[i])
		meanXY[i] = plotter.XY{X: x, Y: means[i]}
		band[i] = plotter.XY{X: x, Y: means[i] + sd}
		band[2*plotPoints-1-i] = plotter.XY{X: x, Y: means[i] - sd}
	}
	dataXY := make(plotter.XYs, len(xs))
	for i := range xs {
		dataXY[i] = plotter.XY{X: xs[i], Y: outputs[i]}
	}

	p := plot.New()
	p.Title.Text = "Gaussian process posterior"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return nil, err
	}
	poly.Color = color.RGBA{R: 170, G: 200, B: 240, A: 255}
	poly.LineStyle.Width = 0

	line, err := plotter.NewLine(meanXY)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{B: 160, A: 255}

	scatter, err := plotter.NewScatter(dataXY)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}

	p.Add(poly, line, scatter)
	p.Legend.Add("mean", line)
	p.Legend.Add("±2σ", poly)
	p.Legend.Add("data", scatter)
	return p, nil
}
