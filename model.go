package main

import (
	"context"
	"strings"

	"textsim/internal/embedding"
	"textsim/internal/session"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screenState int

const (
	loginScreen screenState = iota
	calculatorScreen
	modelsScreen
	loadingScreen
	quitConfirmationScreen
)

const (
	emptyInputWarning = "Please fill in both text fields before processing."
	loginFailedError  = "Invalid username or password."
)

// modelCache reports whether a model is already loaded.
type modelCache interface {
	Loaded(name string) bool
}

type model struct {
	ctx        context.Context
	controller *session.Controller
	state      *session.State
	cache      modelCache

	currentScreen  screenState
	previousScreen screenState

	// Login screen
	username     textinput.Model
	password     textinput.Model
	loginFocus   int
	loginMessage string

	// Calculator screen
	texts            []textarea.Model
	selectedTextArea int
	models           []embedding.Model
	modelIndex       int
	warning          string
	errMessage       string
	progressBar      progress.Model

	// Loading screen
	spinner        spinner.Model
	loadingMessage string
}

func initialModel(ctx context.Context, controller *session.Controller, cache modelCache, defaultModel string) model {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Prompt = "👤 "
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = "🔑 "
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	texts := make([]textarea.Model, 2)
	for i := range texts {
		ta := textarea.New()
		ta.Placeholder = textPlaceholders[i]
		ta.SetWidth(75)
		ta.SetHeight(4)
		ta.ShowLineNumbers = false
		texts[i] = ta
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C967E3"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 60

	models := embedding.Models()
	modelIndex := 0
	for i, m := range models {
		if m.Name == defaultModel {
			modelIndex = i
			break
		}
	}

	return model{
		ctx:           ctx,
		controller:    controller,
		state:         session.NewState(),
		cache:         cache,
		currentScreen: loginScreen,
		username:      username,
		password:      password,
		texts:         texts,
		models:        models,
		modelIndex:    modelIndex,
		progressBar:   prog,
		spinner:       s,
	}
}

var textPlaceholders = []string{
	"Enter the first text...",
	"Enter the second text...",
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) selectedModel() embedding.Model {
	return m.models[m.modelIndex]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case analysisCompleteMsg:
		return m.handleAnalysisComplete(msg), nil

	case spinner.TickMsg:
		if m.currentScreen == loadingScreen {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			if m.currentScreen == quitConfirmationScreen {
				return m, tea.Quit
			}
			m.previousScreen = m.currentScreen
			m.currentScreen = quitConfirmationScreen
			return m, nil
		}

		switch m.currentScreen {
		case loadingScreen:
			// one action at a time
			return m, nil
		case quitConfirmationScreen:
			return m.updateQuitConfirmation(key)
		case modelsScreen:
			if key == "f2" || key == "esc" {
				m.currentScreen = calculatorScreen
			}
			return m, nil
		case loginScreen:
			if next, cmd, handled := m.updateLogin(key); handled {
				return next, cmd
			}
		case calculatorScreen:
			if next, cmd, handled := m.updateCalculator(key); handled {
				return next, cmd
			}
		}
	}

	switch m.currentScreen {
	case loginScreen:
		if m.loginFocus == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
	case calculatorScreen:
		m.texts[m.selectedTextArea], cmd = m.texts[m.selectedTextArea].Update(msg)
	}
	return m, cmd
}

func (m model) updateQuitConfirmation(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.currentScreen = m.previousScreen
	}
	return m, nil
}

func (m model) updateLogin(key string) (model, tea.Cmd, bool) {
	switch key {
	case "esc":
		m.previousScreen = m.currentScreen
		m.currentScreen = quitConfirmationScreen
		return m, nil, true
	case "tab", "shift+tab", "up", "down":
		m.setLoginFocus((m.loginFocus + 1) % 2)
		return m, textinput.Blink, true
	case "enter":
		next := m.submitLogin()
		if next.currentScreen == calculatorScreen {
			return next, textarea.Blink, true
		}
		return next, nil, true
	}
	return m, nil, false
}

func (m *model) setLoginFocus(i int) {
	m.loginFocus = i
	if i == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m model) submitLogin() model {
	err := m.controller.Login(m.state, m.username.Value(), m.password.Value())
	m.password.SetValue("")
	if err != nil {
		m.loginMessage = loginFailedError
		return m
	}

	m.loginMessage = ""
	m.warning = ""
	m.errMessage = ""
	m.currentScreen = calculatorScreen
	m.texts[0].SetValue(m.state.Text1)
	m.texts[1].SetValue(m.state.Text2)
	m.focusTextArea(0)
	return m
}

func (m model) updateCalculator(key string) (model, tea.Cmd, bool) {
	switch key {
	case "esc":
		m.previousScreen = m.currentScreen
		m.currentScreen = quitConfirmationScreen
		return m, nil, true
	case "tab":
		m.focusTextArea((m.selectedTextArea + 1) % len(m.texts))
		return m, textarea.Blink, true
	case "ctrl+n":
		m.modelIndex = (m.modelIndex + 1) % len(m.models)
		return m, nil, true
	case "ctrl+p":
		m.modelIndex = (m.modelIndex - 1 + len(m.models)) % len(m.models)
		return m, nil, true
	case "f2":
		m.currentScreen = modelsScreen
		return m, nil, true
	case "ctrl+l":
		m.controller.Clear(m.state)
		for i := range m.texts {
			m.texts[i].SetValue("")
		}
		m.warning = ""
		m.errMessage = ""
		return m, nil, true
	case "ctrl+o":
		m.syncTexts()
		m.controller.Logout(m.state)
		m.warning = ""
		m.errMessage = ""
		m.username.SetValue("")
		m.setLoginFocus(0)
		m.currentScreen = loginScreen
		return m, textinput.Blink, true
	case "ctrl+s", "alt+enter":
		next, cmd := m.startProcessing()
		return next, cmd, true
	}
	return m, nil, false
}

func (m *model) focusTextArea(i int) {
	m.selectedTextArea = i
	for j := range m.texts {
		if j == i {
			m.texts[j].Focus()
		} else {
			m.texts[j].Blur()
		}
	}
}

func (m model) syncTexts() {
	m.state.Text1 = m.texts[0].Value()
	m.state.Text2 = m.texts[1].Value()
}

func (m model) startProcessing() (model, tea.Cmd) {
	m.syncTexts()
	m.errMessage = ""

	if strings.TrimSpace(m.state.Text1) == "" || strings.TrimSpace(m.state.Text2) == "" {
		m.warning = emptyInputWarning
		return m, nil
	}
	m.warning = ""

	name := m.selectedModel().Name
	if m.cache != nil && !m.cache.Loaded(name) {
		m.loadingMessage = "Loading " + name + " and generating embeddings..."
	} else {
		m.loadingMessage = "Generating embeddings..."
	}
	m.currentScreen = loadingScreen
	return m, tea.Batch(m.spinner.Tick, m.processCmd(name))
}

func (m model) View() string {
	switch m.currentScreen {
	case calculatorScreen:
		return m.renderCalculatorScreen()
	case modelsScreen:
		return m.renderModelsScreen()
	case loadingScreen:
		return m.renderLoadingScreen()
	case quitConfirmationScreen:
		return m.renderQuitConfirmationScreen()
	default:
		return m.renderLoginScreen()
	}
}
