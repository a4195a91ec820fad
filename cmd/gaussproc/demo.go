package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussproc/gp"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

var (
	demoSeed       uint64
	demoIterations int
	demoRate       float64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in demonstration",
	Long: `Fits a model to a small one dimensional dataset, optimizes it, refits it
with more samples and draws posterior samples, then predicts on a two
dimensional dataset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		return runDemo(cmd.OutOrStdout(), demoSeed, demoIterations, demoRate)
	},
}

func init() {
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", 42, "seed of the sampling random source")
	demoCmd.Flags().IntVar(&demoIterations, "iterations", 1000, "optimizer iterations")
	demoCmd.Flags().Float64Var(&demoRate, "rate", 0.01, "optimizer learning rate")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(w io.Writer, seed uint64, iterations int, rate float64) error {
	inputs := [][]float64{{0.8}, {1.2}, {3.8}, {4.2}}
	outputs := []float64{3, 4, -2, -2}
	model, err := gp.NewDefault(inputs, outputs)
	if err != nil {
		return err
	}

	if err := printPrediction(w, model, []float64{1}); err != nil {
		return err
	}

	likelihood, err := model.Likelihood()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "likelihood of the current model: %g\n", likelihood)

	if err := model.OptimizeParameters(iterations, rate, true); err != nil {
		var convErr *errors.ConvergenceError
		if !errors.As(err, &convErr) {
			return err
		}
		fmt.Fprintf(w, "optimization stopped at iteration %d, keeping the last valid parameters: %v\n",
			convErr.Iteration, convErr.Err)
	}
	fmt.Fprintf(w, "kernel parameters: %v, noise: %g\n", model.Kernel().Parameters(), model.Noise())

	moreInputs := [][]float64{{0}, {1}, {2}, {5}}
	moreOutputs := []float64{2, 3, -1, -2}
	if err := model.AddSamplesFit(moreInputs, moreOutputs, true, true); err != nil {
		var convErr *errors.ConvergenceError
		if !errors.As(err, &convErr) {
			return err
		}
		fmt.Fprintf(w, "refit stopped at iteration %d: %v\n", convErr.Iteration, convErr.Err)
	}

	means, err := model.PredictSeveral([][]float64{{1}, {2}, {3}})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "predictions: %v\n", means)

	dist, err := model.SampleAtSeveral([][]float64{{1}, {2}})
	if err != nil {
		return err
	}
	src := rand.NewPCG(seed, seed)
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(w, "sample %d: %v\n", i, dist.Sample(src))
	}

	inputs2 := [][]float64{{0.8, 0.1}, {1.2, 0.2}, {3.8, 0.3}, {4.2, 0.5}}
	model2, err := gp.NewDefault(inputs2, outputs)
	if err != nil {
		return err
	}
	return printPrediction(w, model2, []float64{1, 0.4})
}

func printPrediction(w io.Writer, model *gp.GaussianProcess, x []float64) error {
	mean, err := model.Predict(x)
	if err != nil {
		return err
	}
	variance, err := model.PredictVariance(x)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "prediction at %v: %g ± %g\n", x, mean, math.Sqrt(variance))
	return nil
}
