package tui

import "newsbrief/types"

// Messages for the tea program

// ArticlesLoadedMsg carries the result of a list refresh
type ArticlesLoadedMsg struct {
	Articles []types.ArticleSummary
	Err      error
}

// ArticleCreatedMsg is sent when a submission finishes
type ArticleCreatedMsg struct {
	Article *types.ArticleSummary
	Err     error
}

// ArticleDeletedMsg is sent when a delete finishes
type ArticleDeletedMsg struct {
	URL     string
	Deleted bool
	Err     error
}

// MarkdownSavedMsg is sent after a summary is written to disk
type MarkdownSavedMsg struct {
	Path string
	Err  error
}

// BrowserOpenedMsg is sent after asking the OS to open an article
type BrowserOpenedMsg struct {
	Err error
}

// AlertExpiredMsg dismisses the alert it was scheduled for
type AlertExpiredMsg struct {
	ID int
}
