package tui

import "time"

// UI Text Constants
const (
	TextTitle            = "📰 News Summarizer"
	TextInputPlaceholder = "Paste an article URL and press enter"
	TextSubmitting       = "⏳ Summarizing..."
	TextEmptyList        = "No summaries yet."

	TextFooterInput = "enter: summarize | tab: articles | esc: dismiss | ctrl+c: quit"
	TextFooterList  = "↑/↓: select | o: open | w: save markdown | x: delete | r: refresh | tab: input | q: quit"

	TextCreated = "Summary saved."
	TextDeleted = "Summary deleted."
	TextNothing = "That summary was already gone."

	// Generic alerts per failure category
	TextErrInvalidURL  = "Please enter a valid http(s) URL."
	TextErrNoText      = "Couldn't find any article text on that page."
	TextErrTimeout     = "The article took too long to load."
	TextErrRateLimited = "The summarizer is busy. Try again in a moment."
	TextErrUpstream    = "Couldn't fetch or summarize that article."
	TextErrServer      = "Something went wrong on the server."
	TextErrUnreachable = "Can't reach the server."
)

const (
	successAlertTTL = 3 * time.Second
	errorAlertTTL   = 5 * time.Second
)
