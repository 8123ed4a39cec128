package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The loggers must be usable from package load, without InitLoggers, so
// that any package importing logger can log in its own tests.
func TestLoggersUsableWithoutInit(t *testing.T) {
	require.NotNil(t, InfoLogger)
	require.NotNil(t, WarnLogger)
	require.NotNil(t, ErrorLogger)

	assert.NotPanics(t, func() {
		InfoLogger.Info("startup message")
		WarnLogger.Warn("warn message")
		ErrorLogger.Error("error message")
	})
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger(InfoLogger.GetLevel(), &buf)
	l.Info("hello from the catalog")

	assert.Contains(t, buf.String(), "hello from the catalog")
	assert.Contains(t, buf.String(), "level=info")
}
