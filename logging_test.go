package spiral

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewLogger(&out, &errOut, "spiral", false)

	logger.Debugf("hidden %d", 1)
	logger.Infof("galaxy %d", 2)
	logger.Warnf("careful")
	logger.Errorf("broken %s", "pipe")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[spiral] INFO: galaxy 2")
	assert.Contains(t, errOut.String(), "[spiral] WARN: careful")
	assert.Contains(t, errOut.String(), "[spiral] ERROR: broken pipe")
	assert.NotContains(t, out.String(), "WARN")
}

func TestDefaultLogger_ToggleDebug(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(&out, &out, "", false)
	require.False(t, logger.DebugEnabled())

	logger.SetDebug(true)
	logger.Debugf("zoom %v", 50)
	assert.Contains(t, out.String(), "DEBUG: zoom 50")
	assert.NotContains(t, out.String(), "[")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	logger := app.Logger()
	require.NotNil(t, logger)
	assert.False(t, logger.DebugEnabled())
	logger.Infof("dropped")

	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "test", Debug: true}).Build()

	logger, ok := app.Logger().(*DefaultLogger)
	require.True(t, ok)
	assert.True(t, logger.DebugEnabled())
	assert.Same(t, logger, app.Commands().Logger())
}
