package tui

import (
	"errors"
	"net/http"
	"strings"

	"newsbrief/types"

	tea "github.com/charmbracelet/bubbletea"
)

// State represents the submission state machine
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Focus is the part of the screen receiving keys
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

// Model represents the TUI client state
type Model struct {
	Client *APIClient

	State    State
	Focus    Focus
	Input    string
	Articles []types.ArticleSummary
	Selected int
	// Deleting is set while a delete request is in flight
	Deleting bool

	// Alert is the message shown for StateSuccess and StateError
	Alert   string
	alertID int

	// DownloadDir receives Markdown exports
	DownloadDir string
	// Open launches the system browser; replaced in tests
	Open func(url string) error
}

// NewModel creates a new TUI model
func NewModel(apiURL, downloadDir string) Model {
	return Model{
		Client:      NewAPIClient(apiURL),
		State:       StateIdle,
		Focus:       FocusInput,
		DownloadDir: downloadDir,
		Open:        openBrowser,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return listArticles(m.Client)
}

// CanSubmit reports whether the submit control is enabled
func (m Model) CanSubmit() bool {
	return m.State != StateSubmitting && !m.Deleting && strings.TrimSpace(m.Input) != ""
}

// SelectedArticle returns the highlighted article, if any
func (m Model) SelectedArticle() (types.ArticleSummary, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Articles) {
		return types.ArticleSummary{}, false
	}
	return m.Articles[m.Selected], true
}

// showSuccess enters StateSuccess and schedules the dismissal
func (m Model) showSuccess(text string) (Model, tea.Cmd) {
	m.State = StateSuccess
	m.Alert = text
	m.alertID++
	return m, dismissAfter(successAlertTTL, m.alertID)
}

// showError enters StateError and schedules the dismissal
func (m Model) showError(text string) (Model, tea.Cmd) {
	m.State = StateError
	m.Alert = text
	m.alertID++
	return m, dismissAfter(errorAlertTTL, m.alertID)
}

func (m Model) dismissAlert() Model {
	m.State = StateIdle
	m.Alert = ""
	return m
}

// alertFor maps a client error to the generic alert for its category
func alertFor(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return TextErrUnreachable
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		return TextErrInvalidURL
	case http.StatusUnprocessableEntity:
		return TextErrNoText
	case http.StatusGatewayTimeout:
		return TextErrTimeout
	case http.StatusTooManyRequests:
		return TextErrRateLimited
	case http.StatusBadGateway:
		return TextErrUpstream
	default:
		return TextErrServer
	}
}
