package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetRoutesPackageLevelCalls(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := L()
	Set(zap.New(core))
	defer Set(prev)

	Info("Pipeline:tile done", zap.Int("tile", 3))
	Debug("Pipeline:stage", zap.String("stage", "drainage"))
	Error("GdalToolbox:open tif failed")

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "Pipeline:tile done", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["tile"])
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestSetNilSilences(t *testing.T) {
	prev := L()
	Set(nil)
	defer Set(prev)
	assert.NotPanics(t, func() { Info("dropped") })
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("loud", ""))
}
