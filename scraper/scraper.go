package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"newsbrief/config"
	"newsbrief/types"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// maxBodyBytes bounds how much of a page is read.
const maxBodyBytes = 10 << 20

var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// Scraper fetches an article page and extracts its title, text and image.
type Scraper struct {
	httpClient *http.Client
	maxWords   int
}

// New returns a Scraper whose fetches time out after timeout.
func New(timeout time.Duration) *Scraper {
	return NewWithClient(&http.Client{Timeout: timeout})
}

// NewWithClient returns a Scraper that uses the given HTTP client.
func NewWithClient(client *http.Client) *Scraper {
	return &Scraper{httpClient: client, maxWords: config.MaxArticleWords}
}

// Scrape fetches rawURL once and extracts the article. No retries.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*types.ScrapedPage, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ScrapeError{Kind: KindFetch, URL: rawURL, Err: err}
	}

	body, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &ScrapeError{Kind: KindFetch, URL: rawURL, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	page := &types.ScrapedPage{
		URL:   rawURL,
		Title: extractTitle(doc),
		Image: extractImage(doc, pageURL),
	}

	paragraphs, selector := extractParagraphs(doc)
	if len(paragraphs) > 0 {
		slog.Debug("content found", "url", rawURL, "selector", selector)
		page.Text = cleanText(paragraphs, s.maxWords)
	}

	if page.Text == "" || page.Title == "" {
		article, rerr := readability.FromReader(bytes.NewReader(body), pageURL)
		if rerr != nil {
			slog.Debug("readability extraction failed", "url", rawURL, "error", rerr)
		} else {
			if page.Text == "" {
				page.Text = cleanText([]string{article.TextContent}, s.maxWords)
			}
			if page.Title == "" {
				page.Title = article.Title
			}
			if page.Image == "" && article.Image != "" {
				page.Image = resolve(pageURL, article.Image)
			}
		}
	}

	if page.Text == "" {
		return nil, &ScrapeError{Kind: KindEmpty, URL: rawURL}
	}
	return page, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ScrapeError{Kind: KindFetch, URL: rawURL, Err: err}
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ScrapeError{Kind: classifyFetchError(err), URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ScrapeError{Kind: KindStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ScrapeError{Kind: classifyFetchError(err), URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}

func classifyFetchError(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindFetch
}
