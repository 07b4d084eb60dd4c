package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the cowpost configuration.
// Search order: customPath -> ~/.cowpost/config.yaml -> ./cowpost.yaml ->
// embedded default. Environment variables override file values afterwards.
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return finish(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return finish(cfg)
			}
		}
	}

	// Try working directory
	if data, err := os.ReadFile("cowpost.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return finish(cfg)
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return finish(DefaultConfig()) // Fallback to hardcoded if embed fails
	}
	return finish(cfg)
}

// finish applies environment overrides and fills gaps a partial file left.
func finish(cfg Config) (Config, error) {
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	def := DefaultConfig()
	if cfg.PDSHost == "" {
		cfg.PDSHost = def.PDSHost
	}
	if cfg.Generator == "" {
		cfg.Generator = def.Generator
	}
	if cfg.PostText == "" {
		cfg.PostText = def.PostText
	}
	if cfg.Font.Size <= 0 {
		cfg.Font.Size = def.Font.Size
	}
	if cfg.Image.Padding <= 0 {
		cfg.Image.Padding = def.Image.Padding
	}
	if (cfg.Image.Foreground == RGBConfig{}) {
		cfg.Image.Foreground = def.Image.Foreground
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = def.Output.Path
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cowpost", filename)
}
