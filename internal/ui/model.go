// Package ui is the terminal front end of Nova Chat.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"nova-chat/internal/chat"
	"nova-chat/internal/ui/styles"
)

const (
	sidebarWidth = 34
	minMainWidth = 40
)

// replyMsg carries a finished proxy round trip back onto the event loop.
type replyMsg struct {
	sub chat.Submission
	out chat.Outcome
}

type Model struct {
	ctx  context.Context
	ctrl *chat.Controller
	keys keyMap

	theme    *styles.Theme
	input    textarea.Model
	spinner  spinner.Model
	output   viewport.Model
	renderer *glamour.TermRenderer
	// rendererKey is the style and wrap width renderer was built for.
	rendererKey string

	inFlight    int
	showHistory bool
	status      string
	statusErr   bool
	width       int
	height      int
}

// New builds the UI around ctrl. ctx is used for every proxy call and is never cancelled by the UI.
func New(ctx context.Context, ctrl *chat.Controller) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask Anything"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		keys:    defaultKeyMap(),
		theme:   styles.New(ctrl.State().DarkMode),
		input:   ta,
		spinner: sp,
		output:  viewport.New(minMainWidth, 10),
		width:   sidebarWidth + minMainWidth + 4,
		height:  30,
	}
	m.resize()
	m.refreshOutput()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refreshOutput()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		m.inFlight--
		m.ctrl.Complete(msg.sub, msg.out)
		if msg.out.Err != nil {
			m.setStatus(msg.out.Err.Error(), true)
		} else {
			m.setStatus("", false)
		}
		m.refreshOutput()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		prompt := m.input.Value()
		m.ctrl.SetPrompt(prompt)
		sub, ok := m.ctrl.Begin(prompt)
		if !ok {
			return m, nil
		}
		m.inFlight++
		m.setStatus("", false)
		return m, m.send(sub)

	case key.Matches(msg, m.keys.NewChat):
		m.ctrl.NewChat()
		m.input.Reset()
		m.setStatus("", false)
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		copied, err := m.ctrl.CopyResponse()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case copied:
			m.setStatus(chat.CopiedNotice, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Download):
		path, err := m.ctrl.DownloadResponse()
		switch {
		case err != nil:
			m.setStatus(err.Error(), true)
		case path != "":
			m.setStatus("Saved "+path, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		if err := m.ctrl.ToggleTheme(m.ctx); err != nil {
			m.setStatus(err.Error(), true)
		}
		m.theme = styles.New(m.ctrl.State().DarkMode)
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		return m, nil

	case key.Matches(msg, m.keys.Model):
		m.ctrl.CycleModel()
		return m, nil

	case key.Matches(msg, m.keys.TempDown):
		m.ctrl.AdjustTemperature(-1)
		return m, nil
	case key.Matches(msg, m.keys.TempUp):
		m.ctrl.AdjustTemperature(1)
		return m, nil
	case key.Matches(msg, m.keys.TokensDown):
		m.ctrl.AdjustMaxTokens(-1)
		return m, nil
	case key.Matches(msg, m.keys.TokensUp):
		m.ctrl.AdjustMaxTokens(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetPrompt(m.input.Value())
	return m, cmd
}

// send runs one round trip off the event loop. Nothing cancels it.
func (m Model) send(sub chat.Submission) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return replyMsg{sub: sub, out: ctrl.Send(ctx, sub)}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) mainWidth() int {
	w := m.width - sidebarWidth - 4
	if w < minMainWidth {
		w = minMainWidth
	}
	return w
}

func (m *Model) resize() {
	w := m.mainWidth()
	m.input.SetWidth(w)
	m.output.Width = w
	h := m.height - 16
	if h < 5 {
		h = 5
	}
	m.output.Height = h
}

// refreshOutput re-renders the displayed response into the viewport.
func (m *Model) refreshOutput() {
	response := m.ctrl.State().Response
	m.output.SetContent(m.renderResponse(response))
	m.output.GotoTop()
}

func (m *Model) renderResponse(response string) string {
	if response == "" || response == chat.ErrorReply {
		return response
	}
	wrap := m.mainWidth() - 4
	rkey := fmt.Sprintf("%s/%d", m.theme.GlamourStyle, wrap)
	if m.renderer == nil || m.rendererKey != rkey {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.theme.GlamourStyle),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return response
		}
		m.renderer, m.rendererKey = r, rkey
	}
	out, err := m.renderer.Render(response)
	if err != nil {
		return response
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) View() string {
	return m.theme.App.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.mainView()))
}

func (m Model) sidebarView() string {
	t := m.theme
	state := m.ctrl.State()

	var b strings.Builder
	b.WriteString(t.Brand.Render("Nova Chat"))
	b.WriteString("\n\n")
	b.WriteString("➕ New Chat  " + t.Key.Render("ctrl+n") + "\n")
	b.WriteString(fmt.Sprintf("📜 History (%d)  ", len(state.History)) + t.Key.Render("ctrl+r") + "\n")

	if m.showHistory {
		b.WriteString("\n")
		if len(state.History) == 0 {
			b.WriteString(t.Muted.Render("No history") + "\n")
		}
		for _, turn := range state.History {
			b.WriteString(t.Question.Render("Q: "+turn.Prompt) + "\n")
			b.WriteString(t.Answer.Render("A: "+turn.Response) + "\n\n")
		}
	}

	b.WriteString("\n")
	if state.DarkMode {
		b.WriteString("☀️  Light Mode  " + t.Key.Render("ctrl+t"))
	} else {
		b.WriteString("🌙 Dark Mode  " + t.Key.Render("ctrl+t"))
	}

	return t.Sidebar.Width(sidebarWidth).Height(m.height - 2).Render(b.String())
}

func (m Model) mainView() string {
	t := m.theme
	state := m.ctrl.State()
	params := state.Params

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("Nova Chat"),
		"    ",
		t.Label.Render("Model: ")+t.Value.Render(params.Model)+" "+t.Muted.Render("(tab)"),
	)

	settings := fmt.Sprintf("%s %s    %s %s",
		t.Label.Render("Temperature:"), t.Value.Render(fmt.Sprintf("%.1f", params.Temperature)),
		t.Label.Render("Max Tokens:"), t.Value.Render(fmt.Sprintf("%d", params.MaxTokens)),
	)

	outputBox := t.Output.Width(m.mainWidth()).Render(m.output.View())
	if state.Response == chat.ErrorReply {
		outputBox = t.Output.Width(m.mainWidth()).Render(t.Error.Render(state.Response))
	}

	var actions string
	if state.Response != "" {
		actions = "📋 Copy Response " + t.Key.Render("ctrl+y") + "    ⬇️  Download Response " + t.Key.Render("ctrl+d")
	}

	var status string
	switch {
	case m.inFlight > 0:
		status = m.spinner.View() + t.Status.Render(fmt.Sprintf(" waiting for %d repl%s", m.inFlight, plural(m.inFlight, "y", "ies")))
	case m.statusErr:
		status = t.Error.Render(m.status)
	case m.status != "":
		status = t.Status.Render(m.status)
	}

	sections := []string{
		header,
		"",
		t.Label.Render("Enter Prompt"),
		m.input.View(),
		settings,
		"",
		outputBox,
		actions,
		status,
		m.helpView(),
	}
	return t.Main.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) helpView() string {
	var parts []string
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, m.theme.Key.Render(h.Key)+" "+m.theme.Help.Render(h.Desc))
	}
	return strings.Join(parts, m.theme.Help.Render(" • "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
