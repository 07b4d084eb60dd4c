// Package config provides YAML-based configuration loading with environment
// overrides for the cowpost pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/vkondrat/cowpost/internal/ansi"
)

// ErrMissingCredentials means publishing was requested without a Bluesky
// identifier or app password configured.
var ErrMissingCredentials = errors.New("config: missing identifier or app_password; set them in the config file or via BSKY_IDENTIFIER / BSKY_APP_PASSWORD")

// Config is the full tool configuration.
type Config struct {
	// Identifier is the Bluesky handle or email used for authentication.
	Identifier string `yaml:"identifier"`

	// AppPassword is a Bluesky app password (not the account password).
	AppPassword string `yaml:"app_password"`

	// PDSHost is the AT Protocol server; empty selects bsky.social.
	PDSHost string `yaml:"pds_host"`

	// Generator is the shell pipeline producing ANSI-colored text.
	Generator string `yaml:"generator"`

	// PostText is the short post body accompanying the image.
	PostText string `yaml:"post_text"`

	Font   FontConfig   `yaml:"font"`
	Image  ImageConfig  `yaml:"image"`
	Output OutputConfig `yaml:"output"`
}

// FontConfig selects the monospace font used for rasterization.
type FontConfig struct {
	Path string  `yaml:"path"` // empty: try common Linux locations
	Size float64 `yaml:"size"` // point size at 72 DPI
}

// ImageConfig controls canvas colors and margins.
type ImageConfig struct {
	Background RGBConfig `yaml:"background"`
	Foreground RGBConfig `yaml:"foreground"` // default text color before any SGR code
	Padding    int       `yaml:"padding"`
}

// OutputConfig controls where the rendered PNG is written.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// RGBConfig is an RGB triple as it appears in YAML.
type RGBConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGB converts the YAML form into the parser's color type.
func (c RGBConfig) RGB() ansi.RGB {
	return ansi.RGB{R: c.R, G: c.G, B: c.B}
}

// RequireCredentials validates that publishing is possible.
func (c Config) RequireCredentials() error {
	if c.Identifier == "" || c.AppPassword == "" {
		return ErrMissingCredentials
	}
	return nil
}

// ApplyEnv overlays environment variables on top of file values. Environment
// always wins so credentials never need to live on disk.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("BSKY_IDENTIFIER"); v != "" {
		cfg.Identifier = v
	}
	if v := os.Getenv("BSKY_APP_PASSWORD"); v != "" {
		cfg.AppPassword = v
	}
	if v := os.Getenv("BSKY_PDS_HOST"); v != "" {
		cfg.PDSHost = v
	}
	if v := os.Getenv("COWSAY_GENERATOR"); v != "" {
		cfg.Generator = v
	}
	if v := os.Getenv("BSKY_POST_TEXT"); v != "" {
		cfg.PostText = v
	}
	if v := os.Getenv("BSKY_FONT_PATH"); v != "" {
		cfg.Font.Path = v
	}
	if v := os.Getenv("BSKY_FONT_SIZE"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid BSKY_FONT_SIZE %q: %w", v, err)
		}
		cfg.Font.Size = size
	}
	return nil
}
