// Package feeds pulls article links from RSS/Atom feeds and runs them through
// the summarization pipeline.
package feeds

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is one article link taken from a feed
type Item struct {
	Title       string
	URL         string
	PublishedAt time.Time
}

// Fetch retrieves and parses a feed, returning at most maxCount items with links.
func Fetch(ctx context.Context, feedURL string, maxCount int) ([]Item, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}
	return items(feed, maxCount), nil
}

// Parse reads a feed document from r.
func Parse(r io.Reader, maxCount int) ([]Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return items(feed, maxCount), nil
}

func items(feed *gofeed.Feed, maxCount int) []Item {
	maxCount = max(maxCount, 0)
	out := make([]Item, 0, min(len(feed.Items), maxCount))
	for _, it := range feed.Items {
		if len(out) == maxCount {
			break
		}
		link := strings.TrimSpace(it.Link)
		if link == "" {
			continue
		}

		var published time.Time
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			published = *it.UpdatedParsed
		}

		out = append(out, Item{Title: it.Title, URL: link, PublishedAt: published})
	}
	return out
}
