package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussproc/config"
	"github.com/YuminosukeSato/gaussproc/gp"
)

func TestCommandDefinitions(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["demo"])
	assert.True(t, names["fit"])
	assert.True(t, names["plot"])

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, fitCmd.Flags().Lookup("query"))
	assert.NotNil(t, plotCmd.Flags().Lookup("out"))
}

func TestParseDataset(t *testing.T) {
	t.Run("with header", func(t *testing.T) {
		inputs, outputs, err := parseDataset(strings.NewReader("x1,x2,y\n1,2,3\n4, 5, 6\n"))
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{1, 2}, {4, 5}}, inputs)
		assert.Equal(t, []float64{3, 6}, outputs)
	})

	t.Run("without header", func(t *testing.T) {
		inputs, outputs, err := parseDataset(strings.NewReader("# comment\n0.8,3\n1.2,4\n"))
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0.8}, {1.2}}, inputs)
		assert.Equal(t, []float64{3, 4}, outputs)
	})

	t.Run("bad value", func(t *testing.T) {
		_, _, err := parseDataset(strings.NewReader("1,2\n3,abc\n"))
		assert.Error(t, err)
	})

	t.Run("single column", func(t *testing.T) {
		_, _, err := parseDataset(strings.NewReader("1\n2\n"))
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		_, _, err := parseDataset(strings.NewReader("x,y\n"))
		assert.Error(t, err)
	})
}

func TestParseQueries(t *testing.T) {
	rows, err := parseQueries("1.0; 2,3 ;")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2, 3}}, rows)

	_, err = parseQueries("1;x")
	assert.Error(t, err)
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDemo(&out, 7, 20, 0.01))

	text := out.String()
	assert.Contains(t, text, "prediction at [1]:")
	assert.Contains(t, text, "likelihood of the current model:")
	assert.Contains(t, text, "predictions:")
	assert.Contains(t, text, "sample 5:")
	assert.Contains(t, text, "prediction at [1 0.4]:")

	var again bytes.Buffer
	require.NoError(t, runDemo(&again, 7, 20, 0.01))
	assert.Equal(t, text, again.String(), "a fixed seed reproduces the output")
}

func TestRunFit(t *testing.T) {
	inputs := [][]float64{{0.8}, {1.2}, {3.8}, {4.2}}
	outputs := []float64{3, 4, -2, -2}

	var out bytes.Buffer
	require.NoError(t, runFit(&out, config.Default(), inputs, outputs, [][]float64{{1}, {2.5}}))

	text := out.String()
	assert.Contains(t, text, "samples: 4, features: 1")
	assert.Contains(t, text, "log marginal likelihood:")
	assert.Contains(t, text, "training R2:")
	assert.Contains(t, text, "[2.5]:")

	err := runFit(&out, config.Default(), inputs, outputs, [][]float64{{1, 2}})
	assert.Error(t, err)
}

func TestRunFitStandardized(t *testing.T) {
	inputs := [][]float64{{80}, {120}, {380}, {420}}
	outputs := []float64{3, 4, -2, -2}
	cfg := config.Default()
	cfg.Standardize = true

	m, err := train(cfg, inputs, outputs)
	require.NoError(t, err)
	require.NotNil(t, m.scaler)

	scaled, err := m.scale(inputs)
	require.NoError(t, err)
	pred, err := m.PredictSeveral(scaled)
	require.NoError(t, err)
	assert.InDeltaSlice(t, outputs, pred, 1e-3, "training points are interpolated in scaled units")

	var out bytes.Buffer
	require.NoError(t, runFit(&out, cfg, inputs, outputs, [][]float64{{100}}))
	assert.Contains(t, out.String(), "[100]:")
}

func TestPosteriorPlotStandardized(t *testing.T) {
	inputs := [][]float64{{80}, {120}, {380}, {420}}
	cfg := config.Default()
	cfg.Standardize = true
	m, err := train(cfg, inputs, []float64{3, 4, -2, -2})
	require.NoError(t, err)

	p, err := posteriorPlot(m, inputs, []float64{3, 4, -2, -2})
	require.NoError(t, err)
	assert.Equal(t, "Gaussian process posterior", p.Title.Text)
}

func TestPosteriorPlot(t *testing.T) {
	inputs := [][]float64{{0.8}, {1.2}, {3.8}, {4.2}}
	outputs := []float64{3, 4, -2, -2}
	model, err := gp.NewDefault(inputs, outputs)
	require.NoError(t, err)

	p, err := posteriorPlot(&trainedModel{GaussianProcess: model}, inputs, outputs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "posterior.svg")
	require.NoError(t, p.Save(4*72, 3*72, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	inputs2 := [][]float64{{0, 1}, {1, 0}}
	model2, err := gp.NewDefault(inputs2, []float64{1, 2})
	require.NoError(t, err)
	_, err = posteriorPlot(&trainedModel{GaussianProcess: model2}, inputs2, []float64{1, 2})
	assert.Error(t, err)
}
