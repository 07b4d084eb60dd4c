// cowpost runs a colored text generator (fortune | cowsay | lolcat by
// default), renders its ANSI output into a PNG with exact monospaced
// alignment, and publishes the image to a Bluesky account.
//
// Usage:
//
//	cowpost post             - Generate, render, and publish an image
//	cowpost preview          - Generate and render without publishing
//	cowpost history          - Show recently published posts
//
// Global flags:
//
//	--config <path>  - Config YAML (default: ~/.cowpost/config.yaml)
//	--db <path>      - Post history database (default: ~/.cowpost/posts.db)
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cowpost",
	Short: "Render colored cowsay output to PNG and post it to Bluesky",
	Long: `cowpost runs an ANSI-colored text pipeline, renders the result into
a PNG image exactly as a terminal would have displayed it, and posts the
image to a Bluesky account.

Available commands:
  post     - Generate, render, and publish an image
  preview  - Generate and render locally without publishing
  history  - Show recently published posts

Examples:
  cowpost post
  cowpost preview --out today.png --term
  cowpost history --limit 5`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cowpost/posts.db", "Path to post history database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the shared stderr logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cowpost",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
