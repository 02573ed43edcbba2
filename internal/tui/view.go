package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Tax Reform Impact Calculator")

	crumb := m.currentScene.String()
	if m.company != "" {
		crumb = fmt.Sprintf("%s / %s", m.company, crumb)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneForm {
		shortcuts = append(shortcuts, formatShortcut("enter", "calculate"))
		if m.resultsModel.Report() != nil {
			shortcuts = append(shortcuts, formatShortcut("esc", "results"))
		}
		shortcuts = append(shortcuts, formatShortcut("ctrl+c", "quit"))
	} else {
		shortcuts = append(shortcuts, formatShortcut("e", "edit inputs"))
		if m.resultsModel.Report() != nil {
			shortcuts = append(shortcuts, formatShortcut("r", "results"))
		}
		if m.hasInputs {
			shortcuts = append(shortcuts, formatShortcut("c", "compare"))
		}
		shortcuts = append(shortcuts, formatShortcut("?", "help"), formatShortcut("q", "quit"))
	}

	statusText := strings.Join(shortcuts, " • ")

	if m.inputPath != "" {
		name := SubtitleStyle.Render(filepath.Base(m.inputPath))
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(name) - 2
		statusText = statusText + strings.Repeat(" ", max(0, width)) + name
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)
	return m.renderApp(content)
}

func (m Model) renderHelp() string {
	helpText := `
Tax Reform Impact Calculator

Estimates what your business would pay under a uniform IBS/CBS rate
between 25% and 28%, compared with today's PIS/COFINS and ISS.

INPUT FORM:
  tab/↓        Next field
  shift+tab/↑  Previous field
  enter        Calculate
  esc          Back to results

ELSEWHERE:
  e            Edit inputs
  r            Results
  c            What-if comparison
  ?            Show this help
  esc          Go back
  q/ctrl+c     Quit

COMPARISON:
  ↑/↓ or k/j   Move
  space        Select template
  enter        Compare
  d            Clear selection
`
	return BorderStyle.Render(helpText)
}
