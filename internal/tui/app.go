// Package tui is the interactive form for inserting floor-plan notes: ship
// code and workbook inputs, the insert/analyze/write actions, a scrolling
// log, and a status line. One operation runs at a time; the form blocks
// while the host application call is in flight.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/staf"
)

const (
	fieldShip = iota
	fieldSource
	fieldTarget
	fieldCell
	buttonInsertTest
	buttonRunLogic
	buttonWriteNotes
	focusCount
)

var buttonLabels = map[int]string{
	buttonInsertTest: "Insert TEST note",
	buttonRunLogic:   "Run FULL logic",
	buttonWriteNotes: "Write notes",
}

// Model is the form state.
type Model struct {
	actions Actions

	inputs []textinput.Model
	focus  int

	log      viewport.Model
	logLines []string

	status   string
	statusOK bool
	busy     bool

	report *staf.Report

	width, height int
}

type analyzeDoneMsg struct {
	report *staf.Report
	err    error
}

type writeDoneMsg struct {
	op      string
	summary *automation.Summary
	err     error
}

// NewModel builds the form. Defaults prefill the ship code and test cell.
func NewModel(actions Actions, defaultShip string) Model {
	placeholders := []string{"GR", "Machine_Details.xlsx", "STAF.xlsm", "F12"}

	inputs := make([]textinput.Model, 4)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldShip].SetValue(defaultShip)
	inputs[fieldShip].CharLimit = 2
	inputs[fieldCell].SetValue("F12")
	inputs[fieldShip].Focus()

	vp := viewport.New(72, 12)

	return Model{
		actions:  actions,
		inputs:   inputs,
		log:      vp,
		status:   "Ready.",
		statusOK: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.log.Width = msg.Width - 6
		if h := msg.Height - 16; h > 4 {
			m.log.Height = h
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.busy {
				return m, tea.Quit
			}
			return m, nil
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			if m.busy {
				return m, nil
			}
			if m.focus >= buttonInsertTest {
				return m.activate(m.focus)
			}
			return m.moveFocus(1), nil
		}

	case analyzeDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.report = msg.report
		m.appendLog(msg.report.Log...)
		m.appendLog(fmt.Sprintf("Floor plan is displaying: %s", msg.report.ActiveMetric.Label()))
		m.setStatus(fmt.Sprintf("Logic ok — %d placements planned. Ready to write notes.",
			len(msg.report.Plan.Placements)), true)
		return m, nil

	case writeDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.appendLog(summaryLines(msg.op, msg.summary)...)
		shapes := "shapes intact"
		if !msg.summary.ShapesIntact {
			shapes = "SHAPES CHANGED"
		}
		m.setStatus(fmt.Sprintf("%s done — created=%d updated=%d skipped=%d, %s.",
			msg.op, msg.summary.Created, msg.summary.Updated, msg.summary.Skipped, shapes),
			msg.summary.ShapesIntact)
		return m, nil
	}

	// Route remaining messages to the focused input.
	var cmd tea.Cmd
	if m.focus < len(m.inputs) {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = (m.focus + delta + focusCount) % focusCount
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Focus()
	}
	return m
}

func (m Model) activate(button int) (tea.Model, tea.Cmd) {
	ship := strings.TrimSpace(m.inputs[fieldShip].Value())
	source := strings.TrimSpace(m.inputs[fieldSource].Value())
	target := strings.TrimSpace(m.inputs[fieldTarget].Value())
	cell := strings.TrimSpace(m.inputs[fieldCell].Value())

	switch button {
	case buttonInsertTest:
		m.busy = true
		m.setStatus("Inserting test note via the host application...", true)
		return m, func() tea.Msg {
			summary, err := m.actions.InsertTest(target, ship, cell)
			return writeDoneMsg{op: "Test insert", summary: summary, err: err}
		}

	case buttonRunLogic:
		if source == "" || target == "" {
			return m.fail(fmt.Errorf("select both the machine details and STAF workbooks first")), nil
		}
		m.busy = true
		m.setStatus("Running read-only analysis (no writes)...", true)
		return m, func() tea.Msg {
			report, err := m.actions.Analyze(source, target, ship)
			return analyzeDoneMsg{report: report, err: err}
		}

	case buttonWriteNotes:
		if m.report == nil || m.report.Plan == nil {
			return m.fail(fmt.Errorf("run the full logic first")), nil
		}
		m.busy = true
		m.setStatus("Writing notes via the host application...", true)
		plan := m.report.Plan
		return m, func() tea.Msg {
			summary, err := m.actions.Write(plan)
			return writeDoneMsg{op: "Batch write", summary: summary, err: err}
		}
	}
	return m, nil
}

func (m Model) fail(err error) Model {
	m.busy = false
	m.appendLog("Error: " + err.Error())
	m.setStatus("Error: "+err.Error(), false)
	return m
}

func (m *Model) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
}

func (m *Model) appendLog(lines ...string) {
	m.logLines = append(m.logLines, lines...)
	m.log.SetContent(strings.Join(m.logLines, "\n"))
	m.log.GotoBottom()
}

func summaryLines(op string, s *automation.Summary) []string {
	lines := []string{
		fmt.Sprintf("=== %s summary ===", strings.ToUpper(op)),
		fmt.Sprintf("saved to: %s", s.OutPath),
		fmt.Sprintf("created: %d  updated: %d  skipped: %d", s.Created, s.Updated, s.Skipped),
		fmt.Sprintf("shapes: %d before, %d after", s.ShapesBefore, s.ShapesAfter),
	}
	if !s.ShapesIntact {
		lines = append(lines, "WARNING: shape count changed during write")
	}
	return lines
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("STAF Insert Note Tool"))
	b.WriteString("\n\n")

	labels := []string{"Ship code:", "Machine details:", "STAF workbook:", "Test cell:"}
	for i, in := range m.inputs {
		style := labelStyle
		if m.focus == i {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var buttons []string
	for btn := buttonInsertTest; btn <= buttonWriteNotes; btn++ {
		style := buttonStyle
		if m.focus == btn {
			style = focusedButtonStyle
		}
		buttons = append(buttons, style.Render(buttonLabels[btn]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n\n")

	b.WriteString(logBoxStyle.Render(m.log.View()))
	b.WriteString("\n")

	statusLine := statusStyle
	switch {
	case m.busy:
		statusLine = statusBusyStyle
	case !m.statusOK:
		statusLine = statusErrorStyle
	}
	b.WriteString(statusLine.Render(m.status))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: next field  enter: activate  esc: quit"))

	return b.String()
}
