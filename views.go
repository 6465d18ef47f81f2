package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const clearScreen = "\033[2J\033[H" // Clear screen and move cursor to top

var (
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9567E3")).
			Foreground(lipgloss.Color("#C967E3")).
			Bold(true).
			Width(78).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9567E3")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C967E3")).
			Bold(true)

	instructStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E3B667")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C967E3"))

	inactiveStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666"))
)

func header(lines ...string) string {
	return headerStyle.Render(strings.Join(lines, "\n")) + "\n\n"
}

func padding(n int) string {
	return strings.Repeat("\n", n)
}

func (m model) renderLoginScreen() string {
	s := clearScreen
	s += header("🔒 TEXT SIMILARITY 🔒", "Please log in to continue")

	s += labelStyle.Render("Username:") + "\n"
	s += m.username.View() + "\n\n"
	s += labelStyle.Render("Password:") + "\n"
	s += m.password.View() + "\n\n"

	if m.loginMessage != "" {
		s += errorStyle.Render("❌ "+m.loginMessage) + "\n\n"
	}

	s += instructStyle.Render("💡 Tab to switch fields • Enter to log in • Ctrl+C to quit") + "\n"
	s += padding(10)
	return s
}

func (m model) renderCalculatorScreen() string {
	s := clearScreen
	s += header("📐 SIMILARITY CALCULATOR 📐", "Compare two texts with a sentence embedding model")

	s += labelStyle.Render("🤖 Model: ") + valueStyle.Render(m.selectedModel().Name)
	s += instructStyle.Render(fmt.Sprintf("  (%d/%d)", m.modelIndex+1, len(m.models))) + "\n\n"

	for i, ta := range m.texts {
		s += labelStyle.Render(fmt.Sprintf("📝 Text %d:", i+1)) + "\n"
		if m.selectedTextArea == i {
			s += activeStyle.Render(ta.View()) + "\n\n"
		} else {
			s += inactiveStyle.Render(ta.View()) + "\n\n"
		}
	}

	if m.warning != "" {
		s += warningStyle.Render("⚠️  "+m.warning) + "\n\n"
	}
	if m.errMessage != "" {
		s += errorStyle.Render("❌ "+m.errMessage) + "\n\n"
	}

	if res := m.state.Result; res != nil {
		s += labelStyle.Render("✨ Result") + "\n"
		s += fmt.Sprintf("Model: %s\n", res.ModelName)
		s += fmt.Sprintf("Similarity: %.2f\n", res.Similarity)
		s += fmt.Sprintf("Percentage: %.2f%%\n", res.Percent)
		s += m.progressBar.ViewAs(math.Max(0, math.Min(1, res.Similarity))) + "\n\n"
	}

	s += instructStyle.Render("💡 Tab to switch text • Ctrl+N/Ctrl+P to change model • Ctrl+S to compare • Ctrl+L to clear") + "\n"
	s += instructStyle.Render("   F2 for available models • Ctrl+O to log out • Esc to quit") + "\n"
	s += padding(2)
	return s
}

func (m model) renderModelsScreen() string {
	s := clearScreen
	s += header("📚 AVAILABLE MODELS 📚")

	for _, md := range m.models {
		s += valueStyle.Render("• "+md.Name) + "\n"
		s += "  " + md.Description + "\n"
		s += instructStyle.Render("  "+md.RepoID) + "\n\n"
	}

	s += instructStyle.Render("💡 F2 or Esc to return to the calculator") + "\n"
	s += padding(2)
	return s
}

func (m model) renderLoadingScreen() string {
	s := clearScreen
	s += header("🤖 PROCESSING 🤖", "Computing similarity...")

	s += padding(6)
	s += fmt.Sprintf("                              %s %s\n", m.spinner.View(), m.loadingMessage)
	s += padding(15)
	return s
}

func (m model) renderQuitConfirmationScreen() string {
	s := clearScreen
	s += header("⚠️  WARNING ⚠️", "Are you sure you want to quit?")

	s += padding(6)

	warning := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff6b6b")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)
	s += warning.Render("Your texts and result will be lost!") + "\n\n\n"

	instruct := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9567E3")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)
	s += instruct.Render("Press Y to quit • Press N to cancel • Press Esc to cancel") + "\n"

	s += padding(10)
	return s
}
