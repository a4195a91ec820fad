package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{1.0, 2.0, 3.0, 4.0, 5.0},
			yPred: []float64{1.0, 2.0, 3.0, 4.0, 5.0},
			want:  0.0,
		},
		{
			name:  "simple case",
			yTrue: []float64{1.0, 2.0, 3.0, 4.0},
			yPred: []float64{1.5, 2.5, 2.5, 3.5},
			want:  0.25, // (4 × 0.5²) / 4
		},
		{
			name:  "larger errors",
			yTrue: []float64{10.0, 20.0, 30.0},
			yPred: []float64{12.0, 18.0, 33.0},
			want:  17.0 / 3.0, // (4 + 4 + 9) / 3
		},
		{
			name:    "empty",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
		{
			name:    "length mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := []float64{10, 20, 30}
	yPred := []float64{12, 18, 33}

	rmse, err := RMSE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(17.0/3.0), rmse, 1e-12)

	mae, err := MAE(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 7.0/3.0, mae, 1e-12)
}

func TestR2Score(t *testing.T) {
	y := []float64{3, -0.5, 2, 7}
	pred := []float64{2.5, 0.0, 2, 8}

	got, err := R2Score(y, pred)
	require.NoError(t, err)
	assert.InDelta(t, 0.9486081370449679, got, 1e-12)

	got, err = R2Score(y, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = R2Score([]float64{1, 1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestMeanNegLogPredictiveDensity(t *testing.T) {
	// standard normal at its mean
	got, err := MeanNegLogPredictiveDensity([]float64{0}, []float64{0}, []float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Log(2*math.Pi), got, 1e-12)

	got, err = MeanNegLogPredictiveDensity(
		[]float64{1, 3},
		[]float64{0, 3},
		[]float64{1, 4},
	)
	require.NoError(t, err)
	want := (0.5*math.Log(2*math.Pi) + 0.5 + 0.5*math.Log(8*math.Pi)) / 2
	assert.InDelta(t, want, got, 1e-12)

	_, err = MeanNegLogPredictiveDensity([]float64{1}, []float64{1}, []float64{0})
	assert.Error(t, err)
	_, err = MeanNegLogPredictiveDensity([]float64{1}, []float64{1}, []float64{1, 1})
	assert.Error(t, err)
}
