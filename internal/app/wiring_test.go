package app

import (
	"path/filepath"
	"testing"

	"github.com/chrissnell/solarestimate/internal/service"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServiceOptions(t *testing.T) {
	cfg, err := config.ParseYAML([]byte(`
yield:
  model: detailed
  system:
    albedo: 0.3
    efficiency: 0.85
    inverter-efficiency: 0.96
    losses: 0.14
    tracking-type: single_axis
finance:
  revenue-model: flat
  electricity-price: 150
`))
	require.NoError(t, err)

	opts := ServiceOptions(cfg)
	assert.Equal(t, service.ModelDetailed, opts.Model)
	assert.Equal(t, 0.3, opts.System.Albedo)
	assert.Equal(t, types.TrackingSingleAxis, opts.System.TrackingType)
	assert.Equal(t, types.RevenueFlat, opts.Prices.Model)
	assert.Equal(t, 150.0, opts.Prices.ElectricityPrice)
	assert.Len(t, opts.Presets, 4)
	assert.Equal(t, types.TrackingSingleAxis, opts.Presets[3].TrackingType)
}

func TestServiceOptionsWithoutSystemUsesDefaults(t *testing.T) {
	cfg, err := config.ParseYAML(nil)
	require.NoError(t, err)

	opts := ServiceOptions(cfg)
	assert.Zero(t, opts.System)
}

func TestBuild(t *testing.T) {
	cfg, err := config.ParseYAML(nil)
	require.NoError(t, err)
	cfg.Weather.StorePath = filepath.Join(t.TempDir(), "climatology.db")

	deps, err := Build(cfg, nil, zap.NewNop().Sugar())
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Store)
	assert.NotNil(t, deps.Weather)
	assert.Equal(t, service.ModelEmpirical, deps.Service.DefaultModel())
	assert.Equal(t, types.DefaultSystemConfig(), deps.Service.SystemConfig())
}

func TestBuildRejectsUnknownModel(t *testing.T) {
	cfg, err := config.ParseYAML([]byte("yield:\n  model: neural\n"))
	require.NoError(t, err)

	_, err = Build(cfg, nil, zap.NewNop().Sugar())
	assert.Error(t, err)
}
