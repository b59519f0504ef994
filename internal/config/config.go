package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/parkspot/parkspot/internal/models"
)

// Config holds all runtime settings that are not credentials. Everything is
// overridable through PARKSPOT_* environment variables.
type Config struct {
	// Log settings. The TUI owns stdout, so logs go to a file.
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`

	// Geolocation lookup.
	GeolocateURL     string        `mapstructure:"geolocate_url"`
	GeolocateTimeout time.Duration `mapstructure:"geolocate_timeout"`

	// Fallback position used when the device location is unavailable.
	FallbackLat float64 `mapstructure:"fallback_lat"`
	FallbackLng float64 `mapstructure:"fallback_lng"`

	// Map presentation.
	MapZoom int `mapstructure:"map_zoom"`

	// Campaign banner text shown over the map. Empty disables the banner.
	Banner string `mapstructure:"banner"`

	// Session cache directory. Empty means the OS temp dir.
	SessionDir string `mapstructure:"session_dir"`
}

// Fallback returns the configured fallback coordinate.
func (c Config) Fallback() models.Coordinates {
	return models.NewCoordinates(c.FallbackLat, c.FallbackLng)
}

// Load reads configuration from the environment with defaults applied.
func Load(stateDir string) (Config, error) {
	v := viper.New()

	v.SetDefault("log_file", filepath.Join(stateDir, "parkspot.log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("geolocate_url", "https://ipapi.co/json/")
	v.SetDefault("geolocate_timeout", 3*time.Second)
	v.SetDefault("fallback_lat", models.FallbackCoordinates.Lat())
	v.SetDefault("fallback_lng", models.FallbackCoordinates.Lng())
	v.SetDefault("map_zoom", 15)
	v.SetDefault("banner", "Early bird: 20% off hourly parking before 9am")
	v.SetDefault("session_dir", "")

	v.SetEnvPrefix("parkspot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
