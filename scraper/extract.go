package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first one yielding paragraphs wins.
var contentSelectors = []string{
	"div.article-main",
	"article .article-body",
	"article .story-body",
	"div.article-body",
	"div.article-content",
	"div.content",
	"div.post-content",
	"main",
	"article",
	`div[role="main"]`,
	".article-text",
	".story-content",
}

var unwantedKeywords = []string{"advertisement", "sponsored", "copyright", "related", "disclaimer"}

const (
	minSelectorWords = 5
	minFallbackWords = 10
)

var whitespaceRe = regexp.MustCompile(`\s+`)

func extractTitle(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractImage prefers og:image and falls back to the first <img>.
func extractImage(doc *goquery.Document, base *url.URL) string {
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return resolve(base, v)
	}
	if v, ok := doc.Find("img[src]").First().Attr("src"); ok && strings.TrimSpace(v) != "" {
		return resolve(base, v)
	}
	return ""
}

// extractParagraphs returns the kept paragraph texts and the selector that produced them.
func extractParagraphs(doc *goquery.Document) ([]string, string) {
	for _, selector := range contentSelectors {
		var kept []string
		doc.Find(selector).EachWithBreak(func(_ int, block *goquery.Selection) bool {
			block.Find("p").Each(func(_ int, p *goquery.Selection) {
				if text := paragraphText(p); keepParagraph(text, minSelectorWords) {
					kept = append(kept, text)
				}
			})
			// stop at the first block that produced content
			return len(kept) == 0
		})
		if len(kept) > 0 {
			return kept, selector
		}
	}

	var kept []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := paragraphText(p); keepParagraph(text, minFallbackWords) {
			kept = append(kept, text)
		}
	})
	if len(kept) > 0 {
		return kept, "p"
	}
	return nil, ""
}

func paragraphText(p *goquery.Selection) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(p.Text(), " "))
}

func keepParagraph(text string, minWords int) bool {
	if text == "" || len(strings.Fields(text)) <= minWords {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range unwantedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// cleanText joins parts, collapses whitespace and keeps at most maxWords words.
func cleanText(parts []string, maxWords int) string {
	words := strings.Fields(strings.Join(parts, " "))
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}
