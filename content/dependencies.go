package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dependency is one npm package a post's code samples depend on.
type Dependency struct {
	Name    string
	Version string
}

type packageJSON struct {
	Dependencies map[string]string `json:"dependencies"`
}

// Dependencies reads the package.json that sits next to a directory post's
// index file and returns its dependencies sorted by name. Single-file posts
// and posts without a package.json have none.
func Dependencies(p Post) ([]Dependency, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("%w: %s: no file path", ErrInvalidPost, p.ID)
	}
	if !strings.HasPrefix(filepath.Base(p.Path), "index.") {
		return nil, nil
	}
	path := filepath.Join(filepath.Dir(p.Path), "package.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	deps := make([]Dependency, 0, len(pkg.Dependencies))
	for name, version := range pkg.Dependencies {
		deps = append(deps, Dependency{Name: name, Version: version})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps, nil
}
