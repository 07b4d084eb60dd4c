package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkondrat/cowpost/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently published posts",
	Long: `Display the most recent posts recorded in the history database.

Examples:
  cowpost history
  cowpost history --limit 5`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of posts to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	posts, err := store.RecentPosts(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving posts: %v\n", err)
		os.Exit(1)
	}

	if len(posts) == 0 {
		fmt.Println("No posts recorded yet.")
		fmt.Println()
		fmt.Println("Run 'cowpost post' to publish the first one.")
		return
	}

	fmt.Println("Recent posts:")
	fmt.Println()
	fmt.Printf("  %-16s  %-9s  %s\n", "Date", "Size", "URI")
	fmt.Printf("  %-16s  %-9s  %s\n", "----", "----", "---")
	for _, p := range posts {
		dateStr := p.CreatedAt.Format("2006-01-02 15:04")
		sizeStr := fmt.Sprintf("%dx%d", p.Width, p.Height)
		fmt.Printf("  %-16s  %-9s  %s\n", dateStr, sizeStr, p.URI)
	}

	count, err := store.Count()
	if err == nil && count > len(posts) {
		fmt.Println()
		fmt.Printf("Showing %d of %d posts.\n", len(posts), count)
	}
}
