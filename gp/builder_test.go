package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/prior"
)

func TestBuilderDefaults(t *testing.T) {
	inputs, outputs := stepData()
	gp, err := NewBuilder(inputs, outputs).SetLogger(quietLogger()).Train()
	require.NoError(t, err)

	assert.Equal(t, DefaultNoise, gp.Noise())
	assert.Equal(t, "gaussian", gp.Kernel().Name())
	assert.Equal(t, []float64{1}, gp.Kernel().Parameters())
	require.IsType(t, &prior.Constant{}, gp.Prior())
	assert.Equal(t, []float64{0}, gp.Prior().(*prior.Constant).Parameters())

	ref, err := NewDefault(inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)
	a, err := gp.Predict([]float64{2})
	require.NoError(t, err)
	b, err := ref.Predict([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestBuilderTrainFits(t *testing.T) {
	inputs, outputs := sineData(8)
	gp, err := NewBuilder(inputs, outputs).
		SetKernel(kernel.NewMatern52(1)).
		SetPrior(prior.NewConstant(0)).
		SetNoise(0.3).
		SetFitKernel(true).
		SetOptimizer(10, 1e-4).
		SetLogger(quietLogger()).
		Train()
	require.NoError(t, err)

	assert.NotEqual(t, []float64{1}, gp.Kernel().Parameters())
	assert.NotEqual(t, 0.3, gp.Noise())
	assert.Equal(t, []float64{0}, gp.Prior().(*prior.Constant).Parameters())
}

func TestBuilderPropagatesErrors(t *testing.T) {
	_, err := NewBuilder(nil, nil).Train()
	assert.Error(t, err)

	inputs, outputs := stepData()
	_, err = NewBuilder(inputs, outputs).SetOptimizer(-1, 0.1).SetFitKernel(true).Train()
	assert.Error(t, err)
}

func TestBuilderVerboseLogsSteps(t *testing.T) {
	inputs, outputs := sineData(6)

	logger, _ := log.NewTestLogger(log.LevelInfo)
	_, err := NewBuilder(inputs, outputs).
		SetNoise(0.3).
		SetFitKernel(true).
		SetOptimizer(3, 1e-4).
		SetLogger(logger).
		Train()
	require.NoError(t, err)
	assert.False(t, logger.ContainsMessage("Optimizer step"))

	logger.Clear()
	_, err = NewBuilder(inputs, outputs).
		SetNoise(0.3).
		SetFitKernel(true).
		SetOptimizer(3, 1e-4).
		SetVerbose(true).
		SetLogger(logger).
		Train()
	require.NoError(t, err)
	assert.True(t, logger.ContainsMessage("Optimizer step"))
	assert.True(t, logger.ContainsField(log.IterationKey, 2.0))
}
