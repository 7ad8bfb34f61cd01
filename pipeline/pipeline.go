// Package pipeline runs a submission through scrape, summarize and store,
// and fans the result out to the optional archive and event stream.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"newsbrief/archive"
	"newsbrief/events"
	"newsbrief/store"
	"newsbrief/summarizer"
	"newsbrief/types"
)

type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (*types.ScrapedPage, error)
}

type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Deps are the collaborators a Pipeline runs against. Archive and Events may be nil.
type Deps struct {
	Scraper    Scraper
	Summarizer summarizer.Summarizer
	Store      store.Store
	Archive    archive.Mirror
	Events     Publisher
	// Now defaults to time.Now.
	Now func() time.Time
}

type Pipeline struct {
	scraper    Scraper
	summarizer summarizer.Summarizer
	store      store.Store
	archive    archive.Mirror
	events     Publisher
	now        func() time.Time
}

func New(d Deps) *Pipeline {
	p := &Pipeline{
		scraper:    d.Scraper,
		summarizer: d.Summarizer,
		store:      d.Store,
		archive:    d.Archive,
		events:     d.Events,
		now:        d.Now,
	}
	if p.archive == nil {
		p.archive = archive.Noop{}
	}
	if p.events == nil {
		p.events = events.Noop{}
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Create scrapes, summarizes and stores the article at rawURL. Any failing
// step aborts the request and nothing is written.
func (p *Pipeline) Create(ctx context.Context, rawURL string) (*types.ArticleSummary, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, fail(KindInvalidInput, err)
	}
	log := slog.With("url", target)

	// Step 1: scrape
	page, err := p.scraper.Scrape(ctx, target)
	if err != nil {
		log.Warn("scrape failed", "error", err)
		return nil, fail(KindScrape, err)
	}
	log.Debug("scraped article", "title", page.Title, "has_image", page.Image != "")

	// Step 2: summarize
	text, err := p.summarizer.Summarize(ctx, summarizer.Request{Title: page.Title, Text: page.Text})
	if err != nil {
		log.Warn("summarization failed", "error", err)
		return nil, fail(KindSummarization, err)
	}

	// Step 3: upsert by url
	record := &types.ArticleSummary{
		URL:       target,
		Summary:   text,
		Image:     types.StringPtr(page.Image),
		Title:     page.Title,
		Link:      target,
		Model:     p.summarizer.ModelName(),
		CreatedAt: p.now().UTC(),
	}
	if err := p.store.Upsert(ctx, record); err != nil {
		log.Error("store upsert failed", "error", err)
		return nil, fail(KindStorage, fmt.Errorf("save summary: %w", err))
	}

	// Step 4: best-effort side outputs
	if err := p.archive.Put(ctx, record); err != nil {
		log.Warn("archive put failed", "error", err)
	}
	if err := p.events.Publish(ctx, events.NewEvent(events.TypeSummarized, target)); err != nil {
		log.Warn("publish event failed", "type", events.TypeSummarized, "error", err)
	}

	log.Info("article summarized", "model", record.Model)
	return record, nil
}

// List returns every stored summary, newest first.
func (p *Pipeline) List(ctx context.Context) ([]types.ArticleSummary, error) {
	articles, err := p.store.List(ctx)
	if err != nil {
		return nil, fail(KindStorage, fmt.Errorf("list summaries: %w", err))
	}
	if articles == nil {
		articles = []types.ArticleSummary{}
	}
	return articles, nil
}

// Delete removes the summary stored for rawURL, normalized the same way as
// Create. Deleting a URL that was never stored is not an error; the result
// reports whether a record existed.
func (p *Pipeline) Delete(ctx context.Context, rawURL string) (bool, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return false, fail(KindInvalidInput, err)
	}

	deleted, err := p.store.Delete(ctx, target)
	if err != nil {
		slog.Error("store delete failed", "url", target, "error", err)
		return false, fail(KindStorage, fmt.Errorf("delete summary: %w", err))
	}
	if !deleted {
		return false, nil
	}

	if err := p.archive.Delete(ctx, target); err != nil {
		slog.Warn("archive delete failed", "url", target, "error", err)
	}
	if err := p.events.Publish(ctx, events.NewEvent(events.TypeDeleted, target)); err != nil {
		slog.Warn("publish event failed", "type", events.TypeDeleted, "error", err)
	}
	slog.Info("article deleted", "url", target)
	return true, nil
}

// Ping reports whether the store is reachable.
func (p *Pipeline) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}

// NormalizeURL trims input, adds https:// to a bare host and requires an
// http(s) URL with a host.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errors.New("url is required")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", raw)
	}
	return u.String(), nil
}
