package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vkondrat/cowpost/internal/ansi"
	"github.com/vkondrat/cowpost/internal/config"
	"github.com/vkondrat/cowpost/internal/generator"
	"github.com/vkondrat/cowpost/internal/render"
)

// rendered is the output of the generate-parse-rasterize stages, shared by
// the post and preview commands.
type rendered struct {
	doc     ansi.Document
	canvas  render.Canvas
	png     []byte
	altText string
}

// runPipeline executes generator -> parser -> rasterizer and returns the
// encoded PNG along with the parsed document and its plain-text projection.
func runPipeline(ctx context.Context, cfg config.Config, logger *log.Logger) (*rendered, error) {
	logger.Debug("running generator", "command", cfg.Generator)
	raw, err := generator.Run(ctx, cfg.Generator)
	if err != nil {
		return nil, err
	}
	if generator.WantsColor(cfg.Generator) && !generator.HasEscapes(raw) {
		logger.Warn("generator produced no ANSI color codes; the image will be monochrome",
			"command", cfg.Generator)
	}

	doc := ansi.Parse(raw, cfg.Image.Foreground.RGB())
	altText := ansi.StripSGR(raw)
	logger.Debug("parsed document", "lines", len(doc), "columns", doc.Width())

	face, err := render.LoadFace(cfg.Font.Path, cfg.Font.Size)
	if err != nil {
		return nil, err
	}
	metrics, err := render.FaceMetrics(face)
	if err != nil {
		return nil, err
	}

	opts := render.DefaultOptions()
	opts.Padding = cfg.Image.Padding
	opts.Background = cfg.Image.Background.RGB()

	canvas := render.Layout(doc, metrics, opts)
	img := render.Draw(canvas, face, metrics)

	var buf bytes.Buffer
	if err := render.EncodePNG(img, &buf); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	logger.Debug("rendered image", "width", canvas.Width, "height", canvas.Height,
		"bytes", buf.Len())

	return &rendered{
		doc:     doc,
		canvas:  canvas,
		png:     buf.Bytes(),
		altText: altText,
	}, nil
}

// writeImage persists the PNG bytes to the configured output path.
func writeImage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing image %s: %w", path, err)
	}
	return nil
}
