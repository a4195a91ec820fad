package main

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussproc/config"
	"github.com/YuminosukeSato/gaussproc/metrics"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

var (
	fitDataPath string
	fitQueries  string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a model to a CSV dataset and report predictions",
	Long: `Fits a Gaussian process to a CSV file whose last column is the output,
optionally optimizing its hyperparameters as configured, and prints the
likelihood, training scores and predictions for the --query rows.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		inputs, outputs, err := readDataset(fitDataPath)
		if err != nil {
			return err
		}
		var queries [][]float64
		if fitQueries != "" {
			if queries, err = parseQueries(fitQueries); err != nil {
				return err
			}
		}
		return runFit(cmd.OutOrStdout(), cfg, inputs, outputs, queries)
	},
}

func init() {
	fitCmd.Flags().StringVar(&fitDataPath, "data", "", "CSV dataset, last column is the output")
	fitCmd.Flags().StringVar(&fitQueries, "query", "", `query rows, e.g. "1.0;2.5" or "1,0;2,1"`)
	_ = fitCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(fitCmd)
}

func runFit(w io.Writer, cfg *config.Config, inputs [][]float64, outputs []float64, queries [][]float64) error {
	model, err := train(cfg, inputs, outputs)
	if err != nil {
		return err
	}

	likelihood, err := model.Likelihood()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "samples: %d, features: %d\n", model.NumSamples(), model.NumFeatures())
	fmt.Fprintf(w, "kernel: %s %v, noise: %g\n", model.Kernel().Name(), model.Kernel().Parameters(), model.Noise())
	fmt.Fprintf(w, "log marginal likelihood: %g\n", likelihood)

	scaled, err := model.scale(inputs)
	if err != nil {
		return err
	}
	pred, err := model.PredictSeveral(scaled)
	if err != nil {
		return err
	}
	rmse, err := metrics.RMSE(outputs, pred)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "training RMSE: %g\n", rmse)
	if r2, err := model.Score(scaled, outputs); err == nil {
		fmt.Fprintf(w, "training R2: %g\n", r2)
	}
	if nlpd, err := model.NegLogPredictiveDensity(scaled, outputs); err == nil {
		fmt.Fprintf(w, "training NLPD: %g\n", nlpd)
	}

	if len(queries) == 0 {
		return nil
	}
	scaledQueries, err := model.scale(queries)
	if err != nil {
		return errors.Wrap(err, "scaling queries")
	}
	means, err := model.PredictSeveral(scaledQueries)
	if err != nil {
		return errors.Wrap(err, "predicting queries")
	}
	variances, err := model.PredictVarianceSeveral(scaledQueries)
	if err != nil {
		return errors.Wrap(err, "predicting queries")
	}
	for i, q := range queries {
		fmt.Fprintf(w, "%v: %g ± %g\n", q, means[i], math.Sqrt(variances[i]))
	}
	return nil
}
