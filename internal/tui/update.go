package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/reformcalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.loading = false
		if m.compareModel.Comparing() {
			m.compareModel.SetComparison(nil)
		}
		m.err = msg.Err
		return m, nil

	case tuimsg.InputsSubmittedMsg:
		m.inputs = msg.Inputs
		m.hasInputs = true
		m.loading = true
		m.loadingMessage = "Calculating scenarios..."
		return m, calculateCmd(m.calcEngine, msg.Inputs, m.company)

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		m.resultsModel.SetReport(msg.Report)
		// Earlier comparisons used other inputs
		m.compareModel.SetComparison(nil)
		return m.navigate(SceneResults)

	case tuimsg.CompareRequestedMsg:
		if !m.hasInputs {
			m.compareModel.SetComparison(nil)
			return m, nil
		}
		return m, compareCmd(m.compareEngine, m.inputs, msg.Templates)

	case tuimsg.ComparisonCompleteMsg:
		m.compareModel.SetComparison(msg.Set)
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The form takes typed characters, so only esc leaves it
	if m.currentScene == SceneForm {
		if msg.String() == "esc" && m.resultsModel.Report() != nil {
			return m.navigate(SceneResults)
		}
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "e":
		return m.navigate(SceneForm)
	case "esc":
		if m.currentScene == SceneHelp && m.previousScene != SceneHelp {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneForm)
	case "r":
		if m.resultsModel.Report() != nil {
			return m.navigate(SceneResults)
		}
		return m, nil
	case "c":
		if m.hasInputs && m.currentScene != SceneCompare {
			return m.navigate(SceneCompare)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
