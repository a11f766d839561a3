package tui

import (
	"time"

	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/tui/components"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
)

// Config holds console configuration.
type Config struct {
	Theme       themes.Theme
	Client      scoring.Client
	Journal     Journal
	Location    *time.Location
	IDGenerator func() string
	StartView   View
	AlertLimit  int
	Width       int
	Height      int
}

// Option is a functional option for configuring the console.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Location:   time.Local,
		StartView:  ViewIntake,
		AlertLimit: components.FeedAlertLimit,
		Width:      120,
		Height:     40,
	}
}

// WithClient sets the scoring service client.
func WithClient(client scoring.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithJournal records every verdict of the session.
func WithJournal(journal Journal) Option {
	return func(c *Config) {
		c.Journal = journal
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLocation sets the zone alert timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithAlertLimit sets how many alerts the Alerts and Overview feeds request
// per activation.
func WithAlertLimit(limit int) Option {
	return func(c *Config) {
		if limit > 0 {
			c.AlertLimit = limit
		}
	}
}

// WithIDGenerator replaces the transaction id generator.
func WithIDGenerator(gen func() string) Option {
	return func(c *Config) {
		c.IDGenerator = gen
	}
}

// WithStartView selects the view shown first.
func WithStartView(v View) Option {
	return func(c *Config) {
		c.StartView = v
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
