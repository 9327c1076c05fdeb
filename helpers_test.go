package seedpress

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Hello World", "hello-world"},
		{"  Tonal Palettes & HCT!  ", "tonal-palettes-hct"},
		{"Go 1.24 release", "go-1-24-release"},
		{"---", ""},
		{"Ünïcode", "n-code"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://blog.example.com", nil, "https://blog.example.com/"},
		{"https://blog.example.com/", []string{"post"}, "https://blog.example.com/post/"},
		{"https://example.com/blog", []string{"a"}, "https://example.com/blog/a/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestRobotsTxt(t *testing.T) {
	got := RobotsTxt(SiteConfig{URL: "https://blog.example.com/"})
	want := "User-agent: *\nAllow: /\n\nSitemap: https://blog.example.com/sitemap.xml\n"
	if got != want {
		t.Errorf("RobotsTxt = %q, want %q", got, want)
	}
}
