package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	entries := []PostEntry{
		{URI: "at://did/app.bsky.feed.post/1", CID: "cid1", PostText: "cowsay", AltText: "moo one", ImagePath: "a.png", Width: 320, Height: 200},
		{URI: "at://did/app.bsky.feed.post/2", CID: "cid2", PostText: "cowsay", AltText: "moo two", ImagePath: "b.png", Width: 480, Height: 240},
	}
	for _, e := range entries {
		if _, err := store.SavePost(e); err != nil {
			t.Fatalf("SavePost() failed: %v", err)
		}
	}

	recent, err := store.RecentPosts(10)
	if err != nil {
		t.Fatalf("RecentPosts() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(recent))
	}

	// Newest first
	if recent[0].URI != "at://did/app.bsky.feed.post/2" {
		t.Errorf("Expected newest post first, got %q", recent[0].URI)
	}
	if recent[0].AltText != "moo two" || recent[0].Width != 480 {
		t.Errorf("Post fields did not round-trip: %+v", recent[0])
	}
}

func TestStoreLastPost(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	last, err := store.LastPost()
	if err != nil {
		t.Fatalf("LastPost() failed: %v", err)
	}
	if last != nil {
		t.Errorf("Expected nil for an empty store, got %+v", last)
	}

	if _, err := store.SavePost(PostEntry{URI: "at://x", CID: "c", PostText: "t", AltText: "a", ImagePath: "p.png"}); err != nil {
		t.Fatalf("SavePost() failed: %v", err)
	}

	last, err = store.LastPost()
	if err != nil {
		t.Fatalf("LastPost() failed: %v", err)
	}
	if last == nil || last.URI != "at://x" {
		t.Errorf("Expected the saved post, got %+v", last)
	}
}

func TestStoreCount(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 posts, got %d", count)
	}

	for i := 0; i < 3; i++ {
		if _, err := store.SavePost(PostEntry{URI: "at://x", CID: "c", PostText: "t", AltText: "a", ImagePath: "p.png"}); err != nil {
			t.Fatalf("SavePost() failed: %v", err)
		}
	}

	count, err = store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 posts, got %d", count)
	}
}
