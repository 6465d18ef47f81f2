package main

import (
	"errors"

	"textsim/internal/analyzer"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for async operations
type analysisCompleteMsg struct {
	modelName string
	err       error
}

// processCmd runs the comparison off the UI goroutine. The session state is
// not touched by Update until the message comes back.
func (m model) processCmd(modelName string) tea.Cmd {
	ctx, controller, state := m.ctx, m.controller, m.state
	return func() tea.Msg {
		err := controller.Process(ctx, state, modelName)
		return analysisCompleteMsg{modelName: modelName, err: err}
	}
}

func (m model) handleAnalysisComplete(msg analysisCompleteMsg) model {
	if m.currentScreen == loadingScreen {
		m.currentScreen = calculatorScreen
	} else if m.currentScreen == quitConfirmationScreen {
		m.previousScreen = calculatorScreen
	}

	switch {
	case msg.err == nil:
		m.warning = ""
		m.errMessage = ""
	case errors.Is(msg.err, analyzer.ErrEmptyInput):
		m.warning = emptyInputWarning
	default:
		m.errMessage = "Error: " + msg.err.Error()
	}
	return m
}
