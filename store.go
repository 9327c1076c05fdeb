package seedpress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/seedpress/content"
)

// Store wraps a SQLite database that indexes the posts found on disk.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while an index run writes. The busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    color TEXT NOT NULL,
    description TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 1,
    related TEXT NOT NULL,
    body TEXT NOT NULL,
    path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS posts_date ON posts (date DESC, id);
`)
	return err
}

const postColumns = `id, title, date, color, description, draft, related, body, path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (content.Post, error) {
	var (
		p             content.Post
		date, related string
		draft         int
	)
	if err := r.Scan(&p.ID, &p.Title, &date, &p.Color, &p.Description, &draft, &related, &p.Body, &p.Path); err != nil {
		return content.Post{}, err
	}
	t, err := time.Parse(content.DateLayout, date)
	if err != nil {
		return content.Post{}, fmt.Errorf("post %s: stored date %q: %w", p.ID, date, err)
	}
	p.Date = t
	p.Draft = draft == 1
	p.Related = ParseRelated(related)
	return p, nil
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns published posts ordered by date descending.
func (s *Store) ListPosts(ctx context.Context) ([]content.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE draft = 0 ORDER BY date DESC, id ASC`)
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts(ctx context.Context) ([]content.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC, id ASC`)
}

// GetPost returns a single published post by id.
func (s *Store) GetPost(ctx context.Context, id string) (content.Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ? AND draft = 0`, id)
}

// GetPostAny returns a post by id regardless of draft status.
func (s *Store) GetPostAny(ctx context.Context, id string) (content.Post, error) {
	return s.getPost(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
}

func (s *Store) getPost(ctx context.Context, query, id string) (content.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return content.Post{}, fmt.Errorf("%w: %q", content.ErrNotFound, id)
	}
	return p, err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func savePost(ctx context.Context, db execer, p content.Post) error {
	draft := 0
	if p.Draft {
		draft = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Date.Format(content.DateLayout), p.Color, p.Description, draft, joinRelated(p.Related), p.Body, p.Path)
	return err
}

// SavePost upserts a single post.
func (s *Store) SavePost(ctx context.Context, p content.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return savePost(ctx, s.db, p)
}

// SyncPosts replaces the whole index with posts in one transaction, so
// readers never see a half-written index.
func (s *Store) SyncPosts(ctx context.Context, posts []content.Post) error {
	for _, p := range posts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return err
	}
	for _, p := range posts {
		if err := savePost(ctx, tx, p); err != nil {
			return fmt.Errorf("index %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// DeletePost removes a post by id.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}

func joinRelated(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return "," + strings.Join(ids, ",") + ","
}

// ParseRelated splits a comma-delimited id list (e.g. ",a,b,") into a slice.
// The result is never nil.
func ParseRelated(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
