package seedpress

// Artifact names written at the root of the output directory.
const (
	ThemeFile   = "theme.css"
	TokensFile  = "tokens.json"
	FeedFile    = "rss.xml"
	SitemapFile = "sitemap.xml"
	RobotsFile  = "robots.txt"

	// Per-post artifacts, written under <output>/<id>/.
	PostImageFile = "image.png"
	PostThemeFile = "theme.css"
)

// BuildResult describes one Build run.
type BuildResult struct {
	Posts int      // posts built
	Files []string // written paths relative to the output dir, sorted
}
