// Package metrics provides scores for regression predictions, including
// probabilistic scores that take the predictive variance into account.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MSE", yTrue, yPred); err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	d := floats.Distance(yTrue, yPred, 2)
	return d * d / float64(len(yTrue)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

// R2Score は決定係数（R²）を計算する
func R2Score(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("R2Score", yTrue, yPred); err != nil {
		return 0, err
	}

	// 全変動（TSS）と残差変動（RSS）
	yMean := stat.Mean(yTrue, nil)
	var tss, rss float64
	for i, y := range yTrue {
		tss += (y - yMean) * (y - yMean)
		rss += (y - yPred[i]) * (y - yPred[i])
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MeanNegLogPredictiveDensity は正規予測分布 N(mean_i, variance_i) のもとでの
// 平均負対数予測密度を計算する
//
//	NLPD = (1/n) Σ [ ½ log(2π σ_i²) + (y_i − μ_i)² / (2 σ_i²) ]
func MeanNegLogPredictiveDensity(yTrue, mean, variance []float64) (float64, error) {
	if err := checkPair("MeanNegLogPredictiveDensity", yTrue, mean); err != nil {
		return 0, err
	}
	if len(variance) != len(yTrue) {
		return 0, errors.NewDimensionError("MeanNegLogPredictiveDensity", len(yTrue), len(variance), 0)
	}

	var sum float64
	for i, y := range yTrue {
		v := variance[i]
		if !(v > 0) {
			return 0, errors.NewValidationError("variance", "must be positive", v)
		}
		r := y - mean[i]
		sum += 0.5*math.Log(2*math.Pi*v) + r*r/(2*v)
	}
	return sum / float64(len(yTrue)), nil
}

func checkPair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), 0)
	}
	return nil
}
