package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solarestimate.log")
	require.NoError(t, InitWithFile(false, FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}))
	t.Cleanup(func() { Init(false) })

	GetSugaredLogger().Infow("estimate served", "model", "empirical")
	GetSugaredLogger().Debugw("hidden at info level")
	Infof("listening on %d", 8080)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"estimate served"`)
	assert.Contains(t, out, `"model":"empirical"`)
	assert.Contains(t, out, `"msg":"listening on 8080"`)
	assert.NotContains(t, out, "hidden at info level")
}

func TestGetSugaredLoggerBeforeInit(t *testing.T) {
	baseLogger, log = nil, nil
	t.Cleanup(func() { Init(false) })

	l := GetSugaredLogger()
	require.NotNil(t, l)
	l.Info("discarded")
	Infof("also discarded")
}
