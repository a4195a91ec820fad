package main

import (
	"github.com/YuminosukeSato/gaussproc/config"
	"github.com/YuminosukeSato/gaussproc/gp"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/preprocessing"
)

// trainedModel pairs a fitted process with the input scaler it was trained
// behind. scaler is nil when standardization is off.
type trainedModel struct {
	*gp.GaussianProcess
	scaler *preprocessing.StandardScaler
}

// scale maps rows in data units to the units the process was trained on.
func (m *trainedModel) scale(rows [][]float64) ([][]float64, error) {
	if m.scaler == nil {
		return rows, nil
	}
	return m.scaler.Transform(rows)
}

func train(cfg *config.Config, inputs [][]float64, outputs []float64) (*trainedModel, error) {
	logger := log.GetLoggerWithName("cli")
	m := &trainedModel{}
	if cfg.Standardize {
		m.scaler = preprocessing.NewStandardScaler()
		scaled, err := m.scaler.FitTransform(inputs)
		if err != nil {
			return nil, err
		}
		logger.Debug("Inputs standardized", "scaler", m.scaler.String())
		inputs = scaled
	}

	builder, err := cfg.Builder(inputs, outputs, logger)
	if err != nil {
		return nil, err
	}
	model, err := builder.Train()
	if err != nil {
		return nil, err
	}
	if cfg.Optimizer.Verbose && (cfg.Optimizer.FitKernel || cfg.Optimizer.FitPrior) {
		logger.Info("Model trained",
			log.SamplesKey, model.NumSamples(),
			log.KernelKey, model.Kernel().Name(),
			log.HyperParamsKey, model.Kernel().Parameters(),
			log.NoiseKey, model.Noise(),
		)
	}
	m.GaussianProcess = model
	return m, nil
}
