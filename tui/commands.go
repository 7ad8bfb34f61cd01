package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"newsbrief/summary"
	"newsbrief/types"

	tea "github.com/charmbracelet/bubbletea"
)

// listArticles creates a command to refresh the article list
func listArticles(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		articles, err := client.ListArticles(context.Background())
		return ArticlesLoadedMsg{Articles: articles, Err: err}
	}
}

// createArticle creates a command to submit a URL
func createArticle(client *APIClient, articleURL string) tea.Cmd {
	return func() tea.Msg {
		article, err := client.CreateArticle(context.Background(), articleURL)
		return ArticleCreatedMsg{Article: article, Err: err}
	}
}

// deleteArticle creates a command to delete a stored summary
func deleteArticle(client *APIClient, articleURL string) tea.Cmd {
	return func() tea.Msg {
		deleted, err := client.DeleteArticle(context.Background(), articleURL)
		return ArticleDeletedMsg{URL: articleURL, Deleted: deleted, Err: err}
	}
}

// openArticle creates a command that opens the original article
func openArticle(open func(string) error, articleURL string) tea.Cmd {
	return func() tea.Msg {
		return BrowserOpenedMsg{Err: open(articleURL)}
	}
}

// saveMarkdown creates a command that writes the summary as a .md file
func saveMarkdown(dir string, a types.ArticleSummary) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, MarkdownFilename(a))
		doc := summary.Markdown(a.Title, a.URL, summary.Parse(a.Summary))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return MarkdownSavedMsg{Err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return MarkdownSavedMsg{Path: path}
	}
}

// MarkdownFilename names the export for an article
func MarkdownFilename(a types.ArticleSummary) string {
	return "summary-" + a.ID() + ".md"
}

// dismissAfter fires AlertExpiredMsg for alert id after d
func dismissAfter(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return AlertExpiredMsg{ID: id}
	})
}
