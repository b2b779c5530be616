package observability_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/embercheck/embercheck/internal/observability"
)

func TestGetLogger_BeforeInitializeIsNop(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	logger := observability.GetLogger()
	require.NotNil(t, logger)
	logger.Info("must not panic")
}

func TestInitialize_WritesStructuredLogs(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var buf bytes.Buffer
	observability.Initialize(observability.Config{Level: "info", Format: "json"}, zapcore.AddSync(&buf))

	observability.GetLogger().Info("scan started")
	observability.Sync()

	assert.Contains(t, buf.String(), `"scan started"`)
	assert.Contains(t, buf.String(), "embercheck")
}

func TestInitialize_LevelFiltersDebug(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var buf bytes.Buffer
	observability.Initialize(observability.Config{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))

	observability.GetLogger().Debug("hidden")
	observability.GetLogger().Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	var first, second bytes.Buffer
	observability.Initialize(observability.Config{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	observability.Initialize(observability.Config{Level: "info", Format: "json"}, zapcore.AddSync(&second))

	observability.GetLogger().Info("routed to first")

	assert.Contains(t, first.String(), "routed to first")
	assert.Empty(t, second.String())
}
