package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	assert.False(t, e.IsFitted())
	assert.Equal(t, NotFitted, e.State())

	e.SetDimensions(2, 10)
	e.SetFitted()
	assert.True(t, e.IsFitted())
	assert.Equal(t, "fitted", e.State().String())

	e.Reset()
	assert.False(t, e.IsFitted())
	nFeatures, nSamples := e.Dimensions()
	assert.Equal(t, 2, nFeatures)
	assert.Equal(t, 10, nSamples)
}
