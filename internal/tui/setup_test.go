// ABOUTME: Unit tests for the gazette setup TUI wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel("", 0)
	if m.step != StepServer {
		t.Errorf("expected initial step StepServer, got %d", m.step)
	}
	if m.inputs[0].Value() != "" {
		t.Error("expected empty server input for new config")
	}
	if m.inputs[1].Value() != "" {
		t.Error("expected empty page size input for new config")
	}
}

func TestNewSetupModel_ExistingConfig(t *testing.T) {
	m := NewSetupModel("https://gazette.example.com", 25)
	if m.inputs[0].Value() != "https://gazette.example.com" {
		t.Errorf("expected pre-filled server, got %q", m.inputs[0].Value())
	}
	if m.inputs[1].Value() != "25" {
		t.Errorf("expected pre-filled page size, got %q", m.inputs[1].Value())
	}
}

func TestSetupModel_StepTransitions(t *testing.T) {
	m := NewSetupModel("https://gazette.example.com", 0)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepPageSize {
		t.Errorf("expected StepPageSize after Enter on server, got %d", m.step)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepDone {
		t.Errorf("expected StepDone after Enter on page size, got %d", m.step)
	}
	if m.inputs[1].Value() != "10" {
		t.Errorf("expected default page size 10, got %q", m.inputs[1].Value())
	}
}

func TestSetupModel_InvalidServerURL(t *testing.T) {
	m := NewSetupModel("", 0)
	m.inputs[0].SetValue("gazette.example.com")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.step != StepServer {
		t.Errorf("expected to stay on StepServer with invalid URL, got %d", m.step)
	}
	if m.errMsg == "" {
		t.Error("expected error message for invalid URL")
	}
}

func TestSetupModel_ServerURLTrailingSlashTrimmed(t *testing.T) {
	m := NewSetupModel("", 0)
	m.inputs[0].SetValue("https://gazette.example.com/")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)
	if m.inputs[0].Value() != "https://gazette.example.com" {
		t.Errorf("expected trimmed URL, got %q", m.inputs[0].Value())
	}
}

func TestSetupModel_InvalidPageSize(t *testing.T) {
	m := NewSetupModel("https://gazette.example.com", 0)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(SetupModel)

	for _, bad := range []string{"zero", "0", "101", "-5"} {
		m.inputs[1].SetValue(bad)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(SetupModel)
		if m.step != StepPageSize {
			t.Errorf("expected to stay on StepPageSize with page size %q, got %d", bad, m.step)
		}
	}
}

func TestSetupModel_QuitOnCtrlC(t *testing.T) {
	m := NewSetupModel("", 0)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(SetupModel)
	if cmd == nil {
		t.Error("expected quit cmd on ctrl+c")
	}
	if !m.quitting {
		t.Error("expected quitting to be true")
	}
	if m.ShouldSave() {
		t.Error("expected ShouldSave false after ctrl+c")
	}
}

func TestSetupModel_QuitOnEsc(t *testing.T) {
	m := NewSetupModel("", 0)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(SetupModel)
	if cmd == nil {
		t.Error("expected quit cmd on escape")
	}
	if !m.quitting {
		t.Error("expected quitting to be true")
	}
}

func TestSetupModel_Result(t *testing.T) {
	m := NewSetupModel("", 0)
	m.inputs[0].SetValue("https://gazette.example.com")
	m.inputs[1].SetValue("25")
	m.step = StepDone

	serverURL, pageSize := m.Result()
	if serverURL != "https://gazette.example.com" {
		t.Errorf("expected server from result, got %q", serverURL)
	}
	if pageSize != 25 {
		t.Errorf("expected page size 25, got %d", pageSize)
	}
}

func TestSetupModel_ShouldSave(t *testing.T) {
	t.Run("done means save", func(t *testing.T) {
		m := NewSetupModel("", 0)
		m.step = StepDone
		if !m.ShouldSave() {
			t.Error("expected ShouldSave true when done")
		}
	})

	t.Run("quit means no save", func(t *testing.T) {
		m := NewSetupModel("", 0)
		m.quitting = true
		if m.ShouldSave() {
			t.Error("expected ShouldSave false when quitting")
		}
	})
}

func TestSetupModel_ViewContainsBranding(t *testing.T) {
	m := NewSetupModel("", 0)
	view := m.View()
	if !strings.Contains(view, "GAZETTE") {
		t.Error("expected view to contain GAZETTE branding")
	}
}

func TestSetupModel_ViewShowsCurrentStep(t *testing.T) {
	m := NewSetupModel("", 0)

	m.step = StepServer
	if !strings.Contains(m.View(), "Server URL") {
		t.Error("expected StepServer view to mention Server URL")
	}

	m.step = StepPageSize
	if !strings.Contains(m.View(), "Page Size") {
		t.Error("expected StepPageSize view to mention Page Size")
	}
}

func TestSetupModel_ViewDone(t *testing.T) {
	m := NewSetupModel("", 0)
	m.inputs[0].SetValue("https://gazette.example.com")
	m.inputs[1].SetValue("10")
	m.step = StepDone
	view := m.View()
	if !strings.Contains(view, "complete") {
		t.Error("expected StepDone view to mention completion")
	}
}

func TestSetupModel_FullPrefilledFlow(t *testing.T) {
	m := NewSetupModel("https://gazette.example.com", 25)

	u, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = u.(SetupModel)
	if m.step != StepPageSize {
		t.Fatalf("expected StepPageSize, got %d", m.step)
	}

	u, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = u.(SetupModel)
	if m.step != StepDone {
		t.Fatalf("expected StepDone, got %d", m.step)
	}

	if !m.ShouldSave() {
		t.Error("expected ShouldSave true after completing flow")
	}
}
