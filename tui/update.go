package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ArticlesLoadedMsg:
		return m.handleArticlesLoaded(msg)
	case ArticleCreatedMsg:
		return m.handleArticleCreated(msg)
	case ArticleDeletedMsg:
		return m.handleArticleDeleted(msg)
	case MarkdownSavedMsg:
		if m.State == StateSubmitting {
			return m, nil
		}
		if msg.Err != nil {
			return m.showError(msg.Err.Error())
		}
		return m.showSuccess("Saved " + msg.Path)
	case BrowserOpenedMsg:
		if msg.Err != nil && m.State != StateSubmitting {
			return m.showError("Couldn't open a browser: " + msg.Err.Error())
		}
	case AlertExpiredMsg:
		// a newer alert replaced this one
		if msg.ID == m.alertID && (m.State == StateSuccess || m.State == StateError) {
			return m.dismissAlert(), nil
		}
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyTab:
		if m.Focus == FocusInput {
			m.Focus = FocusList
		} else {
			m.Focus = FocusInput
		}
		return m, nil
	case tea.KeyEsc:
		if m.State == StateError || m.State == StateSuccess {
			return m.dismissAlert(), nil
		}
		return m, nil
	}

	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	}

	// the input is frozen while its submission runs
	if m.State == StateSubmitting {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.Input = ""
	case tea.KeyRunes, tea.KeySpace:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Articles)-1 {
			m.Selected++
		}
	case "r":
		return m, listArticles(m.Client)
	case "o":
		if a, ok := m.SelectedArticle(); ok {
			return m, openArticle(m.Open, a.Link)
		}
	case "w":
		if a, ok := m.SelectedArticle(); ok {
			return m, saveMarkdown(m.DownloadDir, a)
		}
	case "x":
		// one request at a time
		if m.State == StateSubmitting || m.Deleting {
			return m, nil
		}
		if a, ok := m.SelectedArticle(); ok {
			m.Deleting = true
			return m, deleteArticle(m.Client, a.URL)
		}
	}
	return m, nil
}

// submit starts a create request unless one is already running
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.Input)
	if m.State == StateSubmitting || m.Deleting || input == "" {
		return m, nil
	}
	m.State = StateSubmitting
	m.Alert = ""
	return m, createArticle(m.Client, input)
}

func (m Model) handleArticlesLoaded(msg ArticlesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.State == StateSubmitting {
			return m, nil
		}
		return m.showError(alertFor(msg.Err))
	}
	m.Articles = msg.Articles
	if m.Selected >= len(m.Articles) {
		m.Selected = max(len(m.Articles)-1, 0)
	}
	return m, nil
}

func (m Model) handleArticleCreated(msg ArticleCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.showError(alertFor(msg.Err))
	}
	m.Input = ""
	m.Selected = 0
	m, dismiss := m.showSuccess(TextCreated)
	return m, tea.Batch(dismiss, listArticles(m.Client))
}

func (m Model) handleArticleDeleted(msg ArticleDeletedMsg) (tea.Model, tea.Cmd) {
	m.Deleting = false
	if msg.Err != nil {
		return m.showError(alertFor(msg.Err))
	}
	text := TextDeleted
	if !msg.Deleted {
		text = TextNothing
	}
	m, dismiss := m.showSuccess(text)
	return m, tea.Batch(dismiss, listArticles(m.Client))
}
