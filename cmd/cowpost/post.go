package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkondrat/cowpost/internal/bluesky"
	"github.com/vkondrat/cowpost/internal/config"
	"github.com/vkondrat/cowpost/internal/storage"
)

var flagSkipHistory bool

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Generate, render, and publish an image",
	Long: `Run the configured generator pipeline, render its ANSI output into
a PNG, and publish the image to the configured Bluesky account.

The plain text of the generator output becomes the image alt text. The
published post is recorded in the local history database.

Examples:
  cowpost post
  cowpost post --verbose
  COWSAY_GENERATOR="cowsay -f tux moo | lolcat -f" cowpost post`,
	Run: runPost,
}

func init() {
	postCmd.Flags().BoolVar(&flagSkipHistory, "no-history", false, "Do not record the post in the history database")
}

func runPost(cmd *cobra.Command, args []string) {
	logger := newLogger()
	ctx := context.Background()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RequireCredentials(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := runPipeline(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeImage(cfg.Output.Path, result.png); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("wrote image", "path", cfg.Output.Path)

	client := bluesky.NewClient(cfg.PDSHost)
	sess, err := client.CreateSession(ctx, cfg.Identifier, cfg.AppPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("authenticated", "handle", sess.Handle, "did", sess.DID)

	blob, err := client.UploadBlob(ctx, sess, result.png, "image/png")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	post, err := client.CreatePost(ctx, sess, cfg.PostText, blob, result.altText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagSkipHistory {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
		} else {
			defer store.Close()
			_, err = store.SavePost(storage.PostEntry{
				URI:       post.URI,
				CID:       post.CID,
				PostText:  cfg.PostText,
				AltText:   result.altText,
				ImagePath: cfg.Output.Path,
				Width:     result.canvas.Width,
				Height:    result.canvas.Height,
			})
			if err != nil {
				logger.Warn("could not record post history", "error", err)
			}
		}
	}

	fmt.Printf("Posted successfully: %s\n", post.URI)
}
