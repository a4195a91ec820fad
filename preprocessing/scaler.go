// Package preprocessing はガウス過程に渡す入力の前処理を提供する
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// minScale を下回る標準偏差の列はスケーリングしない
const minScale = 1e-8

// StandardScaler は入力の各列を平均0、標準偏差1に変換する
// 長さスケールが列ごとの単位に引きずられないよう、学習前に使う
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各列の平均値
	Mean []float64

	// Scale は各列の母標準偏差
	Scale []float64
}

// NewStandardScaler は未学習のStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	scaled, err := scaler.FitTransform(inputs)
//	queries, err = scaler.Transform(queries)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は行の集合から列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	d := len(rows[0])
	column := make([]float64, len(rows))
	mean := make([]float64, d)
	scale := make([]float64, d)
	for j := 0; j < d; j++ {
		for i, row := range rows {
			if len(row) != d {
				return errors.NewDimensionError("StandardScaler.Fit", d, len(row), 1)
			}
			column[i] = row[j]
		}
		if err := errors.CheckNumericalStability("StandardScaler.Fit", column, 0); err != nil {
			return err
		}
		mean[j], scale[j] = stat.PopMeanStdDev(column, nil)
		if scale[j] < minScale {
			scale[j] = 1
		}
	}

	s.Mean, s.Scale = mean, scale
	s.SetDimensions(d, len(rows))
	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量で行を標準化した新しいスライスを返す
func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	return s.apply("StandardScaler.Transform", rows, func(v, mean, scale float64) float64 {
		return (v - mean) / scale
	})
}

// InverseTransform は標準化された行を元の単位に戻す
func (s *StandardScaler) InverseTransform(rows [][]float64) ([][]float64, error) {
	return s.apply("StandardScaler.InverseTransform", rows, func(v, mean, scale float64) float64 {
		return v*scale + mean
	})
}

// FitTransform はFitとTransformを続けて行う
func (s *StandardScaler) FitTransform(rows [][]float64) ([][]float64, error) {
	if err := s.Fit(rows); err != nil {
		return nil, err
	}
	return s.Transform(rows)
}

func (s *StandardScaler) apply(op string, rows [][]float64, f func(v, mean, scale float64) float64) ([][]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", op)
	}
	d := len(s.Mean)
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != d {
			return nil, errors.NewDimensionError(op, d, len(row), 1)
		}
		out[i] = make([]float64, d)
		for j, v := range row {
			out[i][j] = f(v, s.Mean[j], s.Scale[j])
		}
	}
	return out, nil
}

// String はスケーラーの状態を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler(not fitted)"
	}
	return fmt.Sprintf("StandardScaler(mean=%v, scale=%v)", s.Mean, s.Scale)
}
