package theme

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

// RootCSS renders the theme as custom properties: the light scheme on :root,
// the dark scheme on :root inside a prefers-color-scheme media query, then
// the body and selection rules. Properties are written in sorted order so the
// output is stable for a given seed.
func RootCSS(t *TokenSet) (string, error) {
	for _, role := range []string{"background", "on-background", "tertiary", "on-tertiary"} {
		for _, scheme := range Schemes {
			if _, err := t.Lookup(scheme, role); err != nil {
				return "", err
			}
		}
	}
	vars := t.CSSVariables()

	var b strings.Builder
	b.WriteString(":root {\n")
	writeDeclarations(&b, vars[Light], "\t")
	b.WriteString("}\n\n")
	b.WriteString("@media (prefers-color-scheme: dark) {\n\t:root {\n")
	writeDeclarations(&b, vars[Dark], "\t\t")
	b.WriteString("\t}\n}\n\n")
	b.WriteString("body {\n")
	b.WriteString("\tbackground-color: rgb(var(--background) / 1);\n")
	b.WriteString("\tcolor: rgb(var(--on-background) / 1);\n")
	b.WriteString("\toverflow-x: hidden;\n")
	b.WriteString("}\n\n")
	b.WriteString("*::selection {\n")
	b.WriteString("\tbackground-color: rgb(var(--tertiary) / 1);\n")
	b.WriteString("\tcolor: rgb(var(--on-tertiary) / 1);\n")
	b.WriteString("}\n")
	return b.String(), nil
}

func writeDeclarations(b *strings.Builder, vars map[string]string, indent string) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(indent)
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[name])
		b.WriteString(";\n")
	}
}

// InjectIntoRoot returns RootCSS minified, ready to inline into a page head.
func InjectIntoRoot(t *TokenSet) (string, error) {
	code, err := RootCSS(t)
	if err != nil {
		return "", err
	}
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	out, err := m.String("text/css", code)
	if err != nil {
		return "", fmt.Errorf("minify theme css: %w", err)
	}
	return out, nil
}

// StyleTag returns a templ.Component that renders css inside a <style>
// element. css is written verbatim; pass the output of InjectIntoRoot.
func StyleTag(css string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<style>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, css); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</style>")
		return err
	})
}
