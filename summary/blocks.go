// Package summary parses the lightweight markup the summarizer is asked to
// produce: **Heading** lines, "* " bullets and plain paragraphs.
package summary

import (
	"fmt"
	"regexp"
	"strings"
)

type BlockKind string

const (
	Heading   BlockKind = "heading"
	Bullet    BlockKind = "bullet"
	Paragraph BlockKind = "paragraph"
)

type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

var (
	headingRe  = regexp.MustCompile(`^\*\*([^*]+)\*\*:?$`)
	mdHeading  = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	bulletRe   = regexp.MustCompile(`^(?:[*\-•]|\d+[.)])\s+(.+)$`)
	boldMarker = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Parse splits summary text into display blocks. Blank lines are dropped.
func Parse(text string) []Block {
	var blocks []Block
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: Heading, Text: strings.TrimSuffix(strings.TrimSpace(m[1]), ":")})
			continue
		}
		if m := mdHeading.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: Heading, Text: stripBold(m[1])})
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: Bullet, Text: stripBold(m[1])})
			continue
		}
		blocks = append(blocks, Block{Kind: Paragraph, Text: stripBold(line)})
	}
	return blocks
}

func stripBold(s string) string {
	return strings.TrimSpace(boldMarker.ReplaceAllString(s, "$1"))
}

// Markdown renders a stored summary as a standalone Markdown document.
func Markdown(title, url string, blocks []Block) string {
	var b strings.Builder
	if title == "" {
		title = url
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if url != "" {
		fmt.Fprintf(&b, "Source: <%s>\n", url)
	}

	prev := BlockKind("")
	for _, block := range blocks {
		switch block.Kind {
		case Heading:
			fmt.Fprintf(&b, "\n## %s\n", block.Text)
		case Bullet:
			if prev != Bullet {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s\n", block.Text)
		default:
			fmt.Fprintf(&b, "\n%s\n", block.Text)
		}
		prev = block.Kind
	}
	return b.String()
}
