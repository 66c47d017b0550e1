package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rpncalc/internal/calc"
	"rpncalc/internal/diag"
)

const defaultHistory = 50

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	exprStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type replEntry struct {
	expr    string
	postfix string
	value   string
	err     error
}

// ReplModel is an interactive calculator session. Every submitted line is
// evaluated by a calc.Calculator; an empty line re-evaluates the last
// expression.
type ReplModel struct {
	ctx        context.Context
	calc       *calc.Calculator
	input      textinput.Model
	history    []replEntry
	maxHistory int
	width      int
	quitting   bool
}

// NewReplModel creates a session around c. ctx is passed to every evaluation.
func NewReplModel(ctx context.Context, c *calc.Calculator) *ReplModel {
	in := textinput.New()
	in.Prompt = "rpn> "
	in.PromptStyle = promptStyle
	in.Placeholder = c.Expr()
	in.CharLimit = 4096
	in.Focus()
	return &ReplModel{
		ctx:        ctx,
		calc:       c,
		input:      in,
		maxHistory: defaultHistory,
		width:      80,
	}
}

func (m *ReplModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			if line == "quit" || line == "exit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.submit(line)
			m.input.Reset()
			m.input.Placeholder = m.calc.Expr()
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ReplModel) submit(line string) {
	res, err := m.calc.Calc(m.ctx, line)
	entry := replEntry{expr: m.calc.Expr(), err: err}
	if err == nil {
		entry.value = res.Value.String()
		entry.postfix = res.PostfixString()
	}
	m.history = append(m.history, entry)
	if len(m.history) > m.maxHistory {
		m.history = m.history[len(m.history)-m.maxHistory:]
	}
}

func (m *ReplModel) View() string {
	var b strings.Builder
	for _, e := range m.history {
		b.WriteString(renderEntry(e))
	}
	if m.quitting {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: evaluate (empty repeats last) • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func renderEntry(e replEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", exprStyle.Render(e.expr))
	if e.err == nil {
		fmt.Fprintf(&b, "  %s %s\n", helpStyle.Render("= "+e.postfix+" ="), valueStyle.Render(e.value))
		return b.String()
	}
	var de *diag.Error
	if !errors.As(e.err, &de) {
		fmt.Fprintf(&b, "  %s\n", errStyle.Render(e.err.Error()))
		return b.String()
	}
	start := min(int(de.Primary.Start), len(e.expr))
	stop := min(max(int(de.Primary.End), start), len(e.expr))
	lead := runewidth.StringWidth(e.expr[:start])
	width := max(runewidth.StringWidth(e.expr[start:stop]), 1)
	fmt.Fprintf(&b, "  %s%s %s\n",
		strings.Repeat(" ", lead),
		errStyle.Render("^"+strings.Repeat("~", width-1)),
		errStyle.Render(de.Code.ID()+": "+de.Message))
	return b.String()
}
