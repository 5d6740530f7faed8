package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/session"
)

const confirmKey = "confirm"

type replState int

const (
	replStateInput replState = iota
	replStateBusy
	replStateConfirm
)

type outcomeMsg struct {
	out session.Outcome
}

// Model is the interactive prompt: a scrolling transcript above a single input line.
type Model struct {
	CommonModel
	session  *session.Session
	title    string
	renderer *glamour.TermRenderer

	state      replState
	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	form       *huh.Form
	pending    command.Confirmable

	entries []string
	exited  bool
}

func New(sess *session.Session, title string) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command, or help"
	ti.Prompt = promptStyle.Render("> ")
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = promptStyle

	// Help still prints as plain text when no renderer can be built.
	renderer, _ := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))

	return Model{
		session:    sess,
		title:      title,
		renderer:   renderer,
		input:      ti,
		transcript: viewport.New(80, 20),
		spinner:    s,
		entries:    []string{"Welcome to " + title + ". Type 'help' to list the commands."},
	}
}

// Exited reports whether the session ended through the exit command, which has already saved.
func (m Model) Exited() bool { return m.exited }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.transcript.Width = max(msg.Width-2, 20)
		m.transcript.Height = max(msg.Height-7, 3)
		m.input.Width = max(msg.Width-6, 10)
		m.refresh()

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)

			return m, cmd
		}

	case outcomeMsg:
		return m.applyOutcome(msg.out)

	case spinner.TickMsg:
		if m.state != replStateBusy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case replStateInput:
		return m.updateInput(msg)
	case replStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		line := m.input.Value()
		m.input.Reset()
		m.appendEntry(echoStyle.Render("> " + line))
		m.state = replStateBusy

		return m, tea.Batch(m.spinner.Tick, m.handleCmd(line))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.resolve(m.form.GetBool(confirmKey))
	case huh.StateAborted:
		return m.resolve(false)
	}

	return m, cmd
}

func (m Model) resolve(yes bool) (tea.Model, tea.Cmd) {
	pending := m.pending
	m.pending = nil
	m.form = nil
	m.state = replStateBusy

	return m, tea.Batch(m.spinner.Tick, m.resolveCmd(pending, yes))
}

func (m Model) applyOutcome(out session.Outcome) (tea.Model, tea.Cmd) {
	if out.Pending != nil {
		m.pending = out.Pending
		m.form = buildConfirmForm(out.Prompt)
		m.state = replStateConfirm

		return m, m.form.Init()
	}

	m.appendEntry(m.render(out))
	m.state = replStateInput

	if out.Exit {
		m.exited = true
		return m, tea.Quit
	}

	return m, textinput.Blink
}

func (m Model) render(out session.Outcome) string {
	if !out.Markdown || m.renderer == nil {
		return out.Message
	}

	rendered, err := m.renderer.Render(out.Message)
	if err != nil {
		return out.Message
	}

	return strings.TrimSpace(rendered)
}

func (m *Model) appendEntry(s string) {
	m.entries = append(m.entries, s)
	m.refresh()
}

func (m *Model) refresh() {
	m.transcript.SetContent(lipgloss.NewStyle().Width(m.transcript.Width).Render(strings.Join(m.entries, "\n\n")))
	m.transcript.GotoBottom()
}

func (m Model) handleCmd(line string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return outcomeMsg{out: m.session.Handle(ctx, line)}
	}
}

func (m Model) resolveCmd(pending command.Confirmable, yes bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		return outcomeMsg{out: m.session.Resolve(ctx, pending, yes)}
	}
}

func buildConfirmForm(prompt string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(confirmKey).
				Title(prompt).
				Affirmative("Yes").
				Negative("No"),
		),
	).WithWidth(70).WithShowHelp(false)
}

func (m Model) View() string {
	var bottom string

	switch m.state {
	case replStateBusy:
		bottom = m.spinner.View() + " Working..."
	case replStateConfirm:
		bottom = m.form.View()
	default:
		bottom = m.input.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		frameStyle.Render(m.transcript.View()),
		bottom,
		helpStyle.Render("Enter: run | PgUp/PgDn: scroll | Ctrl+C: save and quit"),
	)
}
