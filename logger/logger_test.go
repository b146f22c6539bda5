package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		level      string
		wantErr    bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
		{name: "debug level", level: "debug"},
		{name: "bad level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := Logger
			t.Cleanup(func() { Logger = saved; JSONOutput = false })

			err := Initialize(tt.jsonOutput, tt.level)
			if tt.wantErr {
				require.Error(t, err)
				assert.Same(t, saved, Logger, "failed Initialize must keep the previous logger")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
		})
	}
}

func TestComponentLogger(t *testing.T) {
	saved := Logger
	t.Cleanup(func() { Logger = saved })

	Logger = zap.NewNop().Sugar()
	l := ComponentLogger("driver")
	require.NotNil(t, l)
	l.Infow("translated", FieldFile, "a.py", FieldCount, 1)
	Cleanup()
}
