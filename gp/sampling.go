package gp

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/gaussproc/linalg"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// maxJitterTries bounds the diagonal jitter escalation when factorizing a
// predictive covariance.
const maxJitterTries = 10

// MultivariateNormal is a Gaussian over a fixed set of query rows. It holds
// its own Cholesky factor and can be sampled any number of times; each call
// with fresh randomness gives an independent draw.
type MultivariateNormal struct {
	mean   []float64
	cov    *mat.SymDense
	factor *linalg.Factor
	jitter float64
}

// NewMultivariateNormal factorizes cov, adding diagonal jitter when cov is
// only positive semi-definite. Any jitter used is reported via errors.Warn.
func NewMultivariateNormal(mean []float64, cov *mat.SymDense) (*MultivariateNormal, error) {
	const op = "gp.NewMultivariateNormal"
	if len(mean) == 0 {
		return nil, errors.NewModelError(op, "empty mean", errors.ErrEmptyData)
	}
	if cov.SymmetricDim() != len(mean) {
		return nil, errors.NewDimensionError(op, len(mean), cov.SymmetricDim(), 0)
	}
	factor, jitter, err := linalg.FactorizeWithJitter(cov, maxJitterTries)
	if err != nil {
		return nil, err
	}
	if jitter > 0 {
		errors.Warn(&errors.JitterWarning{Op: op, Size: len(mean), Jitter: jitter})
	}
	return &MultivariateNormal{
		mean:   append([]float64(nil), mean...),
		cov:    cov,
		factor: factor,
		jitter: jitter,
	}, nil
}

// Dim is the number of jointly distributed values.
func (d *MultivariateNormal) Dim() int { return len(d.mean) }

// Mean returns a copy of the mean vector.
func (d *MultivariateNormal) Mean() []float64 { return append([]float64(nil), d.mean...) }

// Covariance returns the covariance matrix. It must not be modified.
func (d *MultivariateNormal) Covariance() *mat.SymDense { return d.cov }

// Jitter is the diagonal jitter that was needed to factorize the covariance.
func (d *MultivariateNormal) Jitter() float64 { return d.jitter }

// Sample draws mean + L·z with z standard normal values taken from src.
// The same source state always yields the same draw.
func (d *MultivariateNormal) Sample(src rand.Source) []float64 {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	z := mat.NewVecDense(d.Dim(), nil)
	for i := 0; i < d.Dim(); i++ {
		z.SetVec(i, normal.Rand())
	}
	var lz mat.VecDense
	lz.MulVec(d.factor.L(), z)

	out := make([]float64, d.Dim())
	for i := range out {
		out[i] = d.mean[i] + lz.AtVec(i)
	}
	return out
}

// SampleN draws count independent samples.
func (d *MultivariateNormal) SampleN(src rand.Source, count int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		out[i] = d.Sample(src)
	}
	return out
}

// SampleAtSeveral は行の同時予測分布を返す。返り値は呼び出し側の乱数源で繰り返しサンプリングできる。
func (gp *GaussianProcess) SampleAtSeveral(X [][]float64) (dist *MultivariateNormal, err error) {
	defer errors.Recover(&err, "GaussianProcess.SampleAtSeveral")

	q, err := gp.checkQueries("GaussianProcess.SampleAtSeveral", X)
	if err != nil {
		return nil, err
	}
	mean, err := gp.PredictSeveral(X)
	if err != nil {
		return nil, err
	}
	dist, err = NewMultivariateNormal(mean, gp.covariance(q))
	if err != nil {
		gp.logger.Error("Predictive covariance could not be factorized",
			err,
			log.OperationKey, log.OperationSample,
			log.QueriesKey, len(X),
		)
		return nil, err
	}
	if dist.Jitter() > 0 {
		gp.logger.Debug("Jitter added to predictive covariance",
			log.OperationKey, log.OperationSample,
			log.QueriesKey, len(X),
			log.JitterKey, dist.Jitter(),
		)
	}
	return dist, nil
}
