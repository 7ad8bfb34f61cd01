package tui

import (
	"fmt"
	"strings"

	"newsbrief/summary"
	"newsbrief/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	b.WriteString(m.inputView())
	b.WriteString("\n")

	if alert := m.alertView(); alert != "" {
		b.WriteString(alert)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.listView())

	if a, ok := m.SelectedArticle(); ok {
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(articleView(a)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Focus == FocusInput {
		b.WriteString(InfoStyle.Render(TextFooterInput))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterList))
	}
	return b.String()
}

func (m Model) inputView() string {
	style := InputStyle
	if m.Focus == FocusInput {
		style = FocusedInputStyle
	}

	text := m.Input
	if text == "" {
		text = InfoStyle.Render(TextInputPlaceholder)
	} else if m.Focus == FocusInput {
		text += "█"
	}

	button := SelectedStyle.Render("Summarize")
	if !m.CanSubmit() {
		button = InfoStyle.Render("[Summarize]")
	}
	return style.Render(text) + "  " + button
}

func (m Model) alertView() string {
	switch m.State {
	case StateSubmitting:
		return SuccessStyle.Render(TextSubmitting)
	case StateSuccess:
		return SuccessStyle.Render("✅ " + m.Alert)
	case StateError:
		return ErrorStyle.Render("❌ " + m.Alert + " (esc to dismiss)")
	}
	return ""
}

func (m Model) listView() string {
	if len(m.Articles) == 0 {
		return InfoStyle.Render(TextEmptyList) + "\n"
	}

	var b strings.Builder
	for i, a := range m.Articles {
		label := a.Title
		if label == "" {
			label = a.URL
		}
		line := fmt.Sprintf("%s  %s", a.CreatedAt.Local().Format("Jan 02 15:04"), label)
		if i == m.Selected && m.Focus == FocusList {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else if i == m.Selected {
			b.WriteString("▸ " + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// articleView renders one summary block by block
func articleView(a types.ArticleSummary) string {
	var b strings.Builder
	if a.Title != "" {
		b.WriteString(HeadingStyle.Render(a.Title))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(a.URL))
	b.WriteString("\n")
	if img := a.ImageURL(); img != "" {
		b.WriteString(InfoStyle.Render("🖼  " + img))
		b.WriteString("\n")
	}

	for _, block := range summary.Parse(a.Summary) {
		switch block.Kind {
		case summary.Heading:
			b.WriteString("\n")
			b.WriteString(HeadingStyle.Render(block.Text))
			b.WriteString("\n")
		case summary.Bullet:
			b.WriteString("  • " + block.Text + "\n")
		default:
			b.WriteString(block.Text + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
