package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/AidanWoolley/demikernel/internal/log"
)

func TestNew(t *testing.T) {
	testCases := map[string]struct {
		cfg     log.Config
		enabled zapcore.Level
		wantErr bool
	}{
		"defaults":   {cfg: log.Config{}, enabled: zapcore.InfoLevel},
		"debug json": {cfg: log.Config{Level: "debug", Format: "json"}, enabled: zapcore.DebugLevel},
		"error":      {cfg: log.Config{Level: "error", Format: "CONSOLE"}, enabled: zapcore.ErrorLevel},
		"bad level":  {cfg: log.Config{Level: "loud"}, wantErr: true},
		"bad format": {cfg: log.Config{Format: "xml"}, wantErr: true},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			logger, err := log.New(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
			assert.False(t, logger.Core().Enabled(tc.enabled-1))
		})
	}
}
