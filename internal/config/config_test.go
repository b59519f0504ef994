package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("/tmp/parkspot-state")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/parkspot-state/parkspot.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.GeolocateTimeout)
	assert.Equal(t, 15, cfg.MapZoom)
	assert.Equal(t, models.FallbackCoordinates, cfg.Fallback())
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PARKSPOT_LOG_LEVEL", "debug")
	os.Setenv("PARKSPOT_FALLBACK_LAT", "48.8566")
	os.Setenv("PARKSPOT_FALLBACK_LNG", "2.3522")
	defer func() {
		os.Unsetenv("PARKSPOT_LOG_LEVEL")
		os.Unsetenv("PARKSPOT_FALLBACK_LAT")
		os.Unsetenv("PARKSPOT_FALLBACK_LNG")
	}()

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, models.NewCoordinates(48.8566, 2.3522), cfg.Fallback())
}
