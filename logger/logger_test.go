package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{"console default", false, 0, zapcore.WarnLevel},
		{"console -v", false, 1, zapcore.InfoLevel},
		{"json -vv", true, 2, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}
			Cleanup()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(0))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(1))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputSummary))
	assert.False(t, ShouldOutput(0, OutputProgress))
	assert.True(t, ShouldOutput(1, OutputProgress))
	assert.False(t, ShouldOutput(1, OutputFetches))
	assert.True(t, ShouldOutput(3, OutputSQL))
	assert.False(t, ShouldOutput(2, OutputCategory(99)))
	assert.Equal(t, "fetches", CategoryName(OutputFetches))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}

func TestComponentLogger(t *testing.T) {
	require.NoError(t, Initialize(false, 0))
	defer Cleanup()

	log := CommandLogger(ComponentLogger("synth"), "polyCube")
	assert.NotNil(t, log)
}
