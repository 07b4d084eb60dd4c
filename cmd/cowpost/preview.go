package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkondrat/cowpost/internal/config"
	"github.com/vkondrat/cowpost/internal/render"
)

var (
	flagPreviewOut  string
	flagPreviewTerm bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate and render an image without publishing",
	Long: `Run the generator pipeline and render the result to a local PNG.
No Bluesky credentials are required.

Examples:
  cowpost preview
  cowpost preview --out today.png
  cowpost preview --term`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagPreviewOut, "out", "", "Output PNG path (default: output.path from config)")
	previewCmd.Flags().BoolVar(&flagPreviewTerm, "term", false, "Also echo the parsed document to the terminal")
}

func runPreview(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := runPipeline(context.Background(), cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := flagPreviewOut
	if outPath == "" {
		outPath = cfg.Output.Path
	}
	if err := writeImage(outPath, result.png); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagPreviewTerm {
		fmt.Println(render.TerminalPreview(result.doc))
		fmt.Println()
	}

	fmt.Printf("Rendered %dx%d image to %s\n", result.canvas.Width, result.canvas.Height, outPath)
}
