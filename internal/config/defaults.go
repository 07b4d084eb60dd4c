package config

import (
	_ "embed"
)

//go:embed defaults/cowpost.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded fallback configuration, used if the
// embedded YAML somehow fails to parse.
func DefaultConfig() Config {
	return Config{
		PDSHost:   "https://bsky.social",
		Generator: "fortune | cowsay | lolcat -f",
		PostText:  "cowsay",
		Font: FontConfig{
			Size: 18,
		},
		Image: ImageConfig{
			Background: RGBConfig{R: 11, G: 14, B: 20},
			Foreground: RGBConfig{R: 238, G: 238, B: 238},
			Padding:    20,
		},
		Output: OutputConfig{
			Path: "last_cowsay.png",
		},
	}
}
