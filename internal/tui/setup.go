// ABOUTME: Interactive TUI wizard for configuring the gazette client.
// ABOUTME: 2-step bubbletea model collecting server URL and page size.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current wizard step.
type Step int

const (
	StepServer Step = iota
	StepPageSize
	StepDone
)

const defaultPageSize = 10

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step     Step
	inputs   [2]textinput.Model
	errMsg   string
	quitting bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(serverURL string, pageSize int) SetupModel {
	serverInput := textinput.New()
	serverInput.Placeholder = "https://gazette.example.com"
	serverInput.Focus()
	serverInput.Width = 50
	if serverURL != "" {
		serverInput.SetValue(serverURL)
	}

	pageSizeInput := textinput.New()
	pageSizeInput.Placeholder = strconv.Itoa(defaultPageSize)
	pageSizeInput.Width = 50
	if pageSize > 0 {
		pageSizeInput.SetValue(strconv.Itoa(pageSize))
	}

	return SetupModel{
		step:   StepServer,
		inputs: [2]textinput.Model{serverInput, pageSizeInput},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			return m, tea.Quit
		}

		if m.step == StepServer || m.step == StepPageSize {
			return m.updateInput(msg)
		}
	default:
		// Forward other messages (e.g. cursor blink) to the active input
		if m.step == StepServer || m.step == StepPageSize {
			idx := int(m.step)
			var cmd tea.Cmd
			m.inputs[idx], cmd = m.inputs[idx].Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}

	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) handleEnter() (tea.Model, tea.Cmd) {
	idx := int(m.step)

	if m.step == StepServer {
		val := strings.TrimSpace(strings.TrimSuffix(m.inputs[0].Value(), "/"))
		if !strings.HasPrefix(val, "http://") && !strings.HasPrefix(val, "https://") {
			m.errMsg = "server URL must start with http:// or https://"
			return m, nil
		}
		m.inputs[0].SetValue(val)
	}

	if m.step == StepPageSize {
		val := strings.TrimSpace(m.inputs[1].Value())
		if val == "" {
			val = strconv.Itoa(defaultPageSize)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 100 {
			m.errMsg = "page size must be a number between 1 and 100"
			return m, nil
		}
		m.inputs[1].SetValue(strconv.Itoa(n))
	}

	m.errMsg = ""
	m.inputs[idx].Blur()

	switch m.step {
	case StepServer:
		m.step = StepPageSize
		m.inputs[1].Focus()
		return m, textinput.Blink
	case StepPageSize:
		m.step = StepDone
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   GAZETTE"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure the gazette client.\n\n")

	switch m.step {
	case StepServer:
		b.WriteString(stepStyle.Render("Step 1 of 2: Server URL"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(the Gazette server, e.g. https://gazette.example.com)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepPageSize:
		b.WriteString(fmt.Sprintf("  Server: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 2: Page Size"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("(entries per page, press Enter for default: %d)", defaultPageSize)))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("Setup complete!"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Server:     %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Page size:  %s\n", m.inputs[1].Value()))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (serverURL string, pageSize int) {
	n, err := strconv.Atoi(m.inputs[1].Value())
	if err != nil {
		n = defaultPageSize
	}
	return m.inputs[0].Value(), n
}

// ShouldSave returns true if the wizard completed and the user did not cancel.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
