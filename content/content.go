// Package content loads blog posts from Markdown files with YAML front
// matter and validates them against the post schema.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eringen/seedpress/theme"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidPost is returned when a post does not satisfy the schema.
	ErrInvalidPost = errors.New("content: invalid post")
	// ErrUnknownReference is returned when related names a post that does not exist.
	ErrUnknownReference = errors.New("content: unknown related post")
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("content: post not found")
)

// Post is a single blog post.
type Post struct {
	ID          string
	Title       string
	Date        time.Time
	Color       string // seed colour for the post's theme
	Description string
	Draft       bool
	Related     []string
	Body        string
	Path        string // source file, empty for posts not read from disk
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Color       string   `yaml:"color"`
	Description string   `yaml:"description"`
	Draft       *bool    `yaml:"draft"`
	Related     []string `yaml:"related"`
}

var delimiter = []byte("---")

// Parse decodes a post from its file contents. Posts are drafts unless the
// front matter says otherwise.
func Parse(id string, data []byte) (Post, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, delimiter) {
		return Post{}, fmt.Errorf("%w: %s: missing front matter", ErrInvalidPost, id)
	}
	rest := data[len(delimiter):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return Post{}, fmt.Errorf("%w: %s: unterminated front matter", ErrInvalidPost, id)
	}
	var fm frontMatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return Post{}, fmt.Errorf("%w: %s: %v", ErrInvalidPost, id, err)
	}
	body := rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\n"))

	post := Post{
		ID:          id,
		Title:       strings.TrimSpace(fm.Title),
		Color:       strings.TrimSpace(fm.Color),
		Description: strings.TrimSpace(fm.Description),
		Draft:       true,
		Related:     fm.Related,
		Body:        string(body),
	}
	if fm.Draft != nil {
		post.Draft = *fm.Draft
	}
	if post.Related == nil {
		post.Related = []string{}
	}
	if err := post.applyDate(fm.Date); err != nil {
		return Post{}, err
	}
	if err := post.Validate(); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (p *Post) applyDate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: %s: date is required", ErrInvalidPost, p.ID)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("%w: %s: date %q must be yyyy-MM-dd", ErrInvalidPost, p.ID, raw)
	}
	p.Date = t
	return nil
}

// Validate checks the schema fields that do not depend on other posts.
func (p Post) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPost)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidPost, p.ID)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: %s: date is required", ErrInvalidPost, p.ID)
	}
	if !theme.IsHexColor(p.Color) {
		return fmt.Errorf("%w: %s: color %q must be a hex color string", ErrInvalidPost, p.ID, p.Color)
	}
	return nil
}

// Options controls Load.
type Options struct {
	// IncludeDrafts keeps draft posts, as a development build does.
	IncludeDrafts bool
}

// Load reads every post under dir. A post is either <id>.md, <id>.mdx or a
// directory <id>/ holding index.md or index.mdx. Related references are
// checked against every post, drafts included, and references to drafts are
// dropped when drafts are filtered out. Posts are returned newest first.
func Load(dir string, opts Options) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	byID := make(map[string]Post)
	var posts []Post
	for _, e := range entries {
		id, path, ok := postFile(dir, e)
		if !ok {
			continue
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPost, id)
		}
		p, err := LoadFile(id, path)
		if err != nil {
			return nil, err
		}
		byID[id] = p
		posts = append(posts, p)
	}
	for _, p := range posts {
		for _, ref := range p.Related {
			if _, ok := byID[ref]; !ok {
				return nil, fmt.Errorf("%w: %s references %q", ErrUnknownReference, p.ID, ref)
			}
		}
	}

	if !opts.IncludeDrafts {
		kept := posts[:0]
		for _, p := range posts {
			if !p.Draft {
				kept = append(kept, p)
			}
		}
		posts = kept
		for i := range posts {
			related := make([]string, 0, len(posts[i].Related))
			for _, ref := range posts[i].Related {
				if !byID[ref].Draft {
					related = append(related, ref)
				}
			}
			posts[i].Related = related
		}
	}
	SortByDate(posts)
	return posts, nil
}

// LoadFile reads and parses a single post file.
func LoadFile(id, path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("read post %s: %w", id, err)
	}
	p, err := Parse(id, data)
	if err != nil {
		return Post{}, err
	}
	p.Path = path
	return p, nil
}

func postFile(dir string, e os.DirEntry) (id, path string, ok bool) {
	name := e.Name()
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return "", "", false
	}
	if e.IsDir() {
		for _, index := range []string{"index.md", "index.mdx"} {
			p := filepath.Join(dir, name, index)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return name, p, true
			}
		}
		return "", "", false
	}
	ext := filepath.Ext(name)
	if ext != ".md" && ext != ".mdx" {
		return "", "", false
	}
	return strings.TrimSuffix(name, ext), filepath.Join(dir, name), true
}

// SortByDate orders posts newest first. Posts on the same day keep a stable
// order by id.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].ID < posts[j].ID
	})
}

// Find returns the post with id.
func Find(posts []Post, id string) (Post, error) {
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}
