package tui

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsbrief/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func newTestModel() Model {
	m := NewModel("http://127.0.0.1:0", os.TempDir())
	m.Open = func(string) error { return nil }
	return m
}

func TestSubmitTransitions(t *testing.T) {
	m := newTestModel()
	assert.False(t, m.CanSubmit())

	m, _ = update(t, m, keyRunes("https://example.com/a"))
	assert.Equal(t, "https://example.com/a", m.Input)
	assert.True(t, m.CanSubmit())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateSubmitting, m.State)
	assert.NotNil(t, cmd)
	assert.False(t, m.CanSubmit(), "submit disabled while submitting")

	// a second enter does nothing
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateSubmitting, m.State)
	assert.Nil(t, cmd)

	m, cmd = update(t, m, ArticleCreatedMsg{Article: &types.ArticleSummary{URL: "https://example.com/a"}})
	assert.Equal(t, StateSuccess, m.State)
	assert.Equal(t, TextCreated, m.Alert)
	assert.Equal(t, "", m.Input)
	assert.NotNil(t, cmd)
}

func TestInputFrozenWhileSubmitting(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, keyRunes("https://example.com/a"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateSubmitting, m.State)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "https://example.com/a", m.Input)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "https://example.com/a", m.Input)
	m, _ = update(t, m, keyRunes("b"))
	assert.Equal(t, "https://example.com/a", m.Input)
}

func TestEmptyInputDoesNotSubmit(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, keyRunes("   "))
	assert.False(t, m.CanSubmit())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateIdle, m.State)
	assert.Nil(t, cmd)
}

func TestSuccessAlertExpires(t *testing.T) {
	m := newTestModel()
	m, _ = m.showSuccess(TextCreated)
	id := m.alertID

	m, _ = update(t, m, AlertExpiredMsg{ID: id})
	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, "", m.Alert)
}

func TestStaleAlertExpiryIgnored(t *testing.T) {
	m := newTestModel()
	m, _ = m.showSuccess(TextCreated)
	stale := m.alertID
	m, _ = m.showError(TextErrTimeout)

	m, _ = update(t, m, AlertExpiredMsg{ID: stale})
	assert.Equal(t, StateError, m.State)
}

func TestErrorAlertDismissedWithEsc(t *testing.T) {
	m := newTestModel()
	m.State = StateSubmitting

	m, _ = update(t, m, ArticleCreatedMsg{Err: &APIError{StatusCode: http.StatusGatewayTimeout}})
	assert.Equal(t, StateError, m.State)
	assert.Equal(t, TextErrTimeout, m.Alert)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateIdle, m.State)
}

func TestAlertForCategories(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          TextErrInvalidURL,
		http.StatusUnprocessableEntity: TextErrNoText,
		http.StatusGatewayTimeout:      TextErrTimeout,
		http.StatusTooManyRequests:     TextErrRateLimited,
		http.StatusBadGateway:          TextErrUpstream,
		http.StatusInternalServerError: TextErrServer,
	}
	for status, want := range cases {
		assert.Equal(t, want, alertFor(&APIError{StatusCode: status}))
	}
	assert.Equal(t, TextErrUnreachable, alertFor(errors.New("dial tcp: connection refused")))
}

func TestListNavigationAndActions(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, ArticlesLoadedMsg{Articles: []types.ArticleSummary{
		{URL: "https://example.com/2", Link: "https://example.com/2"},
		{URL: "https://example.com/1", Link: "https://example.com/1"},
	}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusList, m.Focus)

	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.Selected)
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.Selected)

	var opened string
	m.Open = func(u string) error { opened = u; return nil }
	_, cmd := update(t, m, keyRunes("o"))
	require.NotNil(t, cmd)
	_, ok := cmd().(BrowserOpenedMsg)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/1", opened)

	_, cmd = update(t, m, keyRunes("x"))
	assert.NotNil(t, cmd)

	m.State = StateSubmitting
	_, cmd = update(t, m, keyRunes("x"))
	assert.Nil(t, cmd)
}

func TestDeleteSendsOneRequestAtATime(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, ArticlesLoadedMsg{Articles: []types.ArticleSummary{{URL: "https://example.com/a"}}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := update(t, m, keyRunes("x"))
	require.NotNil(t, cmd)
	assert.True(t, m.Deleting)

	m, cmd = update(t, m, keyRunes("x"))
	assert.Nil(t, cmd, "no second delete while one is in flight")

	m, _ = update(t, m, ArticleDeletedMsg{URL: "https://example.com/a", Deleted: true})
	assert.False(t, m.Deleting)
	assert.Equal(t, TextDeleted, m.Alert)

	_, cmd = update(t, m, keyRunes("x"))
	assert.NotNil(t, cmd)
}

func TestDeleteRefreshesList(t *testing.T) {
	m := newTestModel()
	m, cmd := update(t, m, ArticleDeletedMsg{URL: "https://example.com/a", Deleted: false})
	assert.Equal(t, StateSuccess, m.State)
	assert.Equal(t, TextNothing, m.Alert)
	assert.NotNil(t, cmd)
}

func TestListShrinksSelection(t *testing.T) {
	m := newTestModel()
	m.Selected = 3
	m, _ = update(t, m, ArticlesLoadedMsg{Articles: []types.ArticleSummary{{URL: "u"}}})
	assert.Equal(t, 0, m.Selected)
}

func TestSaveMarkdown(t *testing.T) {
	dir := t.TempDir()
	a := types.ArticleSummary{URL: "https://example.com/a", Title: "Rates", Summary: "**Summary**\n* point one", CreatedAt: time.Now()}

	msg := saveMarkdown(dir, a)().(MarkdownSavedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, filepath.Join(dir, MarkdownFilename(a)), msg.Path)

	b, err := os.ReadFile(msg.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# Rates\n"))
	assert.Contains(t, string(b), "- point one")
}

func TestViewRendersSummaryBlocks(t *testing.T) {
	m := newTestModel()
	m.Articles = []types.ArticleSummary{{URL: "https://example.com/a", Summary: "**Summary**\n* point one"}}

	out := m.View()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "• point one")
	assert.NotContains(t, out, "**")
}
