// Package storage provides SQLite-based persistence for published posts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for post history.
type Store struct {
	db *sql.DB
}

// PostEntry records one published post.
type PostEntry struct {
	ID        int64
	URI       string
	CID       string
	PostText  string
	AltText   string
	ImagePath string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uri TEXT NOT NULL,
			cid TEXT NOT NULL,
			post_text TEXT NOT NULL,
			alt_text TEXT NOT NULL,
			image_path TEXT NOT NULL,
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePost records a published post. Returns the ID of the inserted record.
func (s *Store) SavePost(entry PostEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO posts (uri, cid, post_text, alt_text, image_path, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.URI, entry.CID, entry.PostText, entry.AltText,
		entry.ImagePath, entry.Width, entry.Height,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentPosts retrieves the most recent posts, newest first.
func (s *Store) RecentPosts(limit int) ([]PostEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, uri, cid, post_text, alt_text, image_path, width, height, created_at
		 FROM posts
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query posts: %w", err)
	}
	defer rows.Close()

	var entries []PostEntry
	for rows.Next() {
		entry, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LastPost returns the most recently published post, or nil if none exist.
func (s *Store) LastPost() (*PostEntry, error) {
	entries, err := s.RecentPosts(1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// Count returns the total number of recorded posts.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: cannot count posts: %w", err)
	}
	return count, nil
}

// scanPost reads one row, tolerating both time.Time and string datetimes
// from the driver.
func scanPost(rows *sql.Rows) (PostEntry, error) {
	var e PostEntry
	var createdAt any
	if err := rows.Scan(
		&e.ID, &e.URI, &e.CID, &e.PostText, &e.AltText,
		&e.ImagePath, &e.Width, &e.Height, &createdAt,
	); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return e, nil
}
