package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/questforge/questforge/pkg/layout"
)

// Config holds user preferences read from the config file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
}

// LayoutConfig overrides the auto-layout defaults.
type LayoutConfig struct {
	Direction         string  `toml:"direction"`
	NodeWidth         float64 `toml:"node_width"`
	NodeHeight        float64 `toml:"node_height"`
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
}

// LoadConfig reads ~/.config/questforge/config.toml. A missing file yields
// the zero config; a malformed file is logged and otherwise ignored so a
// bad config never blocks the CLI.
func LoadConfig(logger *log.Logger) Config {
	var cfg Config
	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		logger.Warn("ignoring malformed config", "path", path, "error", err)
		return Config{}
	}
	return cfg
}

// layoutOptions converts config overrides into layout options. Flags set
// on the command line are applied on top by the layout command.
func (c Config) layoutOptions() layout.Options {
	return layout.Options{
		Direction:         layout.Direction(c.Layout.Direction),
		NodeWidth:         c.Layout.NodeWidth,
		NodeHeight:        c.Layout.NodeHeight,
		HorizontalSpacing: c.Layout.HorizontalSpacing,
		VerticalSpacing:   c.Layout.VerticalSpacing,
	}
}
