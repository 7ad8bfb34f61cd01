package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ArticleSummary is the stored summary of a single article, keyed by URL.
type ArticleSummary struct {
	URL       string    `json:"url" bson:"url"`
	Summary   string    `json:"summary" bson:"summary"`
	Image     *string   `json:"image" bson:"image,omitempty"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Link      string    `json:"link" bson:"link"`
	Model     string    `json:"model,omitempty" bson:"model,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ID returns the stable identifier derived from the article URL.
func (a *ArticleSummary) ID() string {
	return GenerateID(a.URL)
}

// ImageURL returns the image URL or "" when the page had none.
func (a *ArticleSummary) ImageURL() string {
	if a.Image == nil {
		return ""
	}
	return *a.Image
}

// ScrapedPage is what the scraper extracts from an article page
type ScrapedPage struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GenerateID creates a unique ID from URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
