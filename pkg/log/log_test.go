package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gperrors "github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorTypeKey, "FactorizationError")

	require.NotEmpty(t, buffer.String())
	assert.True(t, testLogger.ContainsMessage("debug message"))
	assert.True(t, testLogger.ContainsMessage("warning message"))
	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrorKey, "boom"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "GaussianProcess",
		EstimatorIDKey, "gp-001",
	)
	contextLogger.Info("contextual message", OperationKey, OperationOptimize)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "GaussianProcess"))
	assert.True(t, testLogger.ContainsField(EstimatorIDKey, "gp-001"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationOptimize))
}

func TestTestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")
	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.With(ModelNameKey, "GaussianProcess").Info("likelihood evaluated",
		LikelihoodKey, -3.5,
		IterationKey, 3,
		HyperParamsKey, []float64{1, 2},
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "likelihood evaluated", entry["message"])
	assert.Equal(t, "GaussianProcess", entry[ModelNameKey])
	assert.InDelta(t, -3.5, entry[LikelihoodKey], 1e-12)
	assert.InDelta(t, 3.0, entry[IterationKey], 1e-12)

	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := gperrors.NewFactorizationError("linalg.Factorize", 3, 0)
	logger.Error("factorization failed", err, OperationKey, OperationFit)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Contains(t, entry["error"], "not positive definite")
	assert.Equal(t, OperationFit, entry[OperationKey])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := GetLogger()
	defer SetLogger(previous)
	defer gperrors.SetZerologWarnFunc(nil)

	require.NoError(t, SetupLogger("debug"))
	assert.True(t, GetLogger().Enabled(context.Background(), LevelDebug))
	assert.Error(t, SetupLogger("loud"))
}
