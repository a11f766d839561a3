package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyBaseURL    = "service.base_url"
	KeyTimeout    = "service.timeout"
	KeyAlertLimit = "alerts.limit"
	KeyTheme      = "console.theme"
	KeyTimezone   = "console.timezone"
	KeyLogFile    = "logging.file"
	KeyLogLevel   = "logging.level"
	KeyLogFormat  = "logging.format"
)

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:8000"
	DefaultAlertLimit = 20
	DefaultTheme      = "default"
)

// Console is the validated configuration of the operator console and the
// one-shot commands.
type Console struct {
	Location   *time.Location
	BaseURL    string
	Theme      string
	LogFile    string
	Timeout    time.Duration
	AlertLimit int
}

// SetDefaults registers every default with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyAlertLimit, DefaultAlertLimit)
	v.SetDefault(KeyTheme, DefaultTheme)
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the console configuration from the global viper instance.
func Load() (Console, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates the console configuration from v.
func LoadFrom(v *viper.Viper) (Console, error) {
	SetDefaults(v)

	cfg := Console{
		BaseURL:    strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout:    v.GetDuration(KeyTimeout),
		AlertLimit: v.GetInt(KeyAlertLimit),
		Theme:      v.GetString(KeyTheme),
		LogFile:    ExpandPath(v.GetString(KeyLogFile)),
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Console{}, fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout < 0 {
		return Console{}, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyTimeout)
	}
	if cfg.AlertLimit <= 0 {
		return Console{}, fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyAlertLimit, cfg.AlertLimit)
	}

	tz := v.GetString(KeyTimezone)
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return Console{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyTimezone, err)
	}

	return cfg, nil
}
