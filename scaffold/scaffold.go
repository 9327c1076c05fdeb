// Package scaffold creates new posts from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when the post would overwrite an existing file.
var ErrExists = errors.New("scaffold: post already exists")

// PostData holds the template variables passed to every post template.
type PostData struct {
	ID    string
	Title string
	Date  string // yyyy-MM-dd
	Color string // #RRGGBB
}

// NewPost writes a draft post into dir and returns the created paths. A
// single-file post is <id>.md; a bundle is <id>/index.md with a
// package.json for code sample dependencies.
func NewPost(dir string, data PostData, bundle bool) ([]string, error) {
	if data.ID == "" {
		return nil, fmt.Errorf("scaffold: empty post id")
	}
	for _, existing := range []string{
		filepath.Join(dir, data.ID+".md"),
		filepath.Join(dir, data.ID+".mdx"),
		filepath.Join(dir, data.ID),
	} {
		if _, err := os.Stat(existing); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrExists, existing)
		}
	}

	if !bundle {
		out := filepath.Join(dir, data.ID+".md")
		if err := render("templates/post.md.tmpl", out, data); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	root := "templates/bundle"
	var created []string
	err := fs.WalkDir(Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, root+"/")
		out := filepath.Join(dir, data.ID, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		if err := render(p, out, data); err != nil {
			return err
		}
		created = append(created, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func render(name, out string, data PostData) error {
	content, err := Templates.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	tmpl, err := template.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	return nil
}
