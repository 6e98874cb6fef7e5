package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "logs", "finhealth.log")
	require.NoError(t, InitLogger("debug", path))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Log.WithField("score", 48.2).Info("analysis stored")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "analysis stored")
	assert.Contains(t, string(data), "score=48.2")
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestInitLoggerTo_WritesConsole(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var console bytes.Buffer
	require.NoError(t, InitLoggerTo(&console, "warn", ""))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	Log.Info("hidden")
	Log.Warn("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}
