package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func post(title, date, extra string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\ncolor: \"#FFC100\"\n" + extra + "---\n\nBody of " + title + "\n"
}

func TestParse(t *testing.T) {
	src := "---\ntitle: Tonal palettes\ndate: 2024-03-05\ncolor: \"#6750A4\"\ndescription: How tones work\ndraft: false\nrelated:\n  - other\n---\n\n# Heading\n"
	p, err := Parse("tonal", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.ID != "tonal" || p.Title != "Tonal palettes" {
		t.Errorf("ID/Title = %q/%q", p.ID, p.Title)
	}
	if !p.Date.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", p.Date)
	}
	if p.Color != "#6750A4" || p.Description != "How tones work" {
		t.Errorf("Color/Description = %q/%q", p.Color, p.Description)
	}
	if p.Draft {
		t.Error("Draft should be false")
	}
	if len(p.Related) != 1 || p.Related[0] != "other" {
		t.Errorf("Related = %v", p.Related)
	}
	if p.Body != "\n# Heading\n" {
		t.Errorf("Body = %q", p.Body)
	}
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse("x", []byte(post("X", "2024-01-01", "")))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !p.Draft {
		t.Error("posts should default to draft")
	}
	if p.Related == nil || len(p.Related) != 0 {
		t.Errorf("Related = %#v, want empty slice", p.Related)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no_front_matter", "# just markdown\n"},
		{"unterminated", "---\ntitle: x\n"},
		{"missing_title", "---\ndate: 2024-01-01\ncolor: \"#FFC100\"\n---\n"},
		{"missing_date", "---\ntitle: x\ncolor: \"#FFC100\"\n---\n"},
		{"bad_date", "---\ntitle: x\ndate: 01/02/2024\ncolor: \"#FFC100\"\n---\n"},
		{"bad_color", "---\ntitle: x\ndate: 2024-01-01\ncolor: FFC100\n---\n"},
		{"missing_color", "---\ntitle: x\ndate: 2024-01-01\n---\n"},
		{"bad_yaml", "---\ntitle: [x\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse("x", []byte(tt.src)); !errors.Is(err, ErrInvalidPost) {
				t.Fatalf("expected ErrInvalidPost, got %v", err)
			}
		})
	}
}

func TestParseCRLF(t *testing.T) {
	src := "---\r\ntitle: x\r\ndate: 2024-01-01\r\ncolor: \"#FFC100\"\r\n---\r\nbody\r\n"
	p, err := Parse("x", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Body != "body\n" {
		t.Errorf("Body = %q", p.Body)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "older.md"), post("Older", "2023-05-01", "draft: false\nrelated: [newer, secret]\n"))
	writeFile(t, filepath.Join(dir, "newer.mdx"), post("Newer", "2024-02-01", "draft: false\n"))
	writeFile(t, filepath.Join(dir, "secret.md"), post("Secret", "2024-06-01", ""))
	writeFile(t, filepath.Join(dir, "bundle", "index.mdx"), post("Bundle", "2023-12-24", "draft: false\n"))
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "_partial.md"), "ignored")
	writeFile(t, filepath.Join(dir, "empty", "readme.txt"), "ignored")

	posts, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	want := []string{"newer", "bundle", "older"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	older, err := Find(posts, "older")
	if err != nil {
		t.Fatal(err)
	}
	if len(older.Related) != 1 || older.Related[0] != "newer" {
		t.Errorf("older.Related = %v, draft reference should be dropped", older.Related)
	}

	all, err := Load(dir, Options{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("Load with drafts failed: %v", err)
	}
	if len(all) != 4 || all[0].ID != "secret" {
		t.Errorf("with drafts got %d posts, first %q", len(all), all[0].ID)
	}
	older, _ = Find(all, "older")
	if len(older.Related) != 2 {
		t.Errorf("with drafts older.Related = %v", older.Related)
	}
}

func TestLoadUnknownReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), post("A", "2024-01-01", "related: [ghost]\n"))
	if _, err := Load(dir, Options{}); !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
}

func TestLoadDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), post("A", "2024-01-01", ""))
	writeFile(t, filepath.Join(dir, "a.mdx"), post("A", "2024-01-01", ""))
	if _, err := Load(dir, Options{}); !errors.Is(err, ErrInvalidPost) {
		t.Fatalf("expected ErrInvalidPost, got %v", err)
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestFindNotFound(t *testing.T) {
	if _, err := Find(nil, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDependencies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bundle", "index.md"), post("Bundle", "2024-01-01", ""))
	writeFile(t, filepath.Join(dir, "bundle", "package.json"), `{"dependencies":{"zod":"^3.23.0","date-fns":"^4.1.0"}}`)
	writeFile(t, filepath.Join(dir, "plain", "index.md"), post("Plain", "2024-01-01", ""))
	writeFile(t, filepath.Join(dir, "flat.md"), post("Flat", "2024-01-01", ""))

	posts, err := Load(dir, Options{IncludeDrafts: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	bundle, _ := Find(posts, "bundle")
	deps, err := Dependencies(bundle)
	if err != nil {
		t.Fatalf("Dependencies failed: %v", err)
	}
	if len(deps) != 2 || deps[0] != (Dependency{"date-fns", "^4.1.0"}) || deps[1] != (Dependency{"zod", "^3.23.0"}) {
		t.Errorf("deps = %+v", deps)
	}
	for _, id := range []string{"plain", "flat"} {
		p, _ := Find(posts, id)
		deps, err := Dependencies(p)
		if err != nil || len(deps) != 0 {
			t.Errorf("%s: deps = %v, err = %v", id, deps, err)
		}
	}
	if _, err := Dependencies(Post{ID: "mem"}); !errors.Is(err, ErrInvalidPost) {
		t.Errorf("expected ErrInvalidPost for post without path, got %v", err)
	}
}

func TestDependenciesBadJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "index.md"), post("B", "2024-01-01", ""))
	writeFile(t, filepath.Join(dir, "b", "package.json"), `{`)
	p, err := LoadFile("b", filepath.Join(dir, "b", "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Dependencies(p); err == nil {
		t.Fatal("expected parse error")
	}
}
