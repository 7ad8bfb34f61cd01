package feeds

// Default configuration values
const (
	DefaultPreset = "cna"
	DefaultCount  = 10
	WorkerCount   = 3
)

// Presets maps friendly names to RSS feed URLs
var Presets = map[string]string{
	"cna": "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml",
	"st":  "https://www.straitstimes.com/news/singapore/rss.xml",
	"hn":  "https://hnrss.org/newest",
	"tr":  "https://www.technologyreview.com/feed/",
}

// ResolveURL resolves a feed identifier to a URL.
// Unknown names are returned as-is and treated as a direct URL.
func ResolveURL(feed string) string {
	if url, ok := Presets[feed]; ok {
		return url
	}
	return feed
}
