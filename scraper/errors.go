package scraper

import "fmt"

// Kind classifies why a scrape failed.
type Kind string

const (
	KindFetch   Kind = "fetch"
	KindTimeout Kind = "timeout"
	KindStatus  Kind = "status"
	KindEmpty   Kind = "empty"
)

// ScrapeError is returned for every failed scrape.
type ScrapeError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *ScrapeError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("scrape %s: unexpected status code %d", e.URL, e.StatusCode)
	case KindEmpty:
		return fmt.Sprintf("scrape %s: no meaningful text could be extracted", e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("scrape %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("scrape %s: %s", e.URL, e.Kind)
}

func (e *ScrapeError) Unwrap() error { return e.Err }
