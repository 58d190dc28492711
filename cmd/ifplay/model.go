// Command ifplay is the bubbletea/glamour terminal demo client
// (SPEC_FULL's cmd/ifplay): it drives protocol.Handler.HandleMessage
// end-to-end through the same minimal word-split tokenizer cmd/ifengine's
// play subcommand uses, proving the whole pipeline without embedding a
// real NL parser. Narrator replies render as markdown via glamour; a
// plain fatih/color path takes over when no TTY is attached.
package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sbenjam1n/ifengine/internal/consoleinput"
	"github.com/sbenjam1n/ifengine/internal/enginebuild"
)

type replyMsg struct {
	text string
}

type model struct {
	engine     *enginebuild.Engine
	worldTitle string

	viewport viewport.Model
	input    textinput.Model
	renderer *glamour.TermRenderer

	transcript strings.Builder
	quitting   bool
}

func newModel(engine *enginebuild.Engine) *model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	input := textinput.New()
	input.Prompt = styleGreen.Render("> ")
	input.Placeholder = "look, take key, open door…"
	input.Focus()

	renderer, _ := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))

	return &model{
		engine:     engine,
		worldTitle: engine.World.Metadata.Title,
		viewport:   vp,
		input:      input,
		renderer:   renderer,
	}
}

func (m *model) Init() tea.Cmd {
	m.appendNarration("Welcome to " + m.worldTitle + ". Type a command; Ctrl-C to quit.")
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.input.Width = msg.Width - 2
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}

	case replyMsg:
		m.appendNarration(msg.text)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	m.appendNarration(styleCyan.Render("> " + line))

	raw := consoleinput.ParseLine(line)
	if raw == nil {
		return nil
	}
	reply := m.engine.Handler.HandleMessage(raw)
	return func() tea.Msg { return replyMsg{text: formatReply(reply)} }
}

func (m *model) appendNarration(text string) {
	rendered := text
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			rendered = out
		}
	}
	m.transcript.WriteString(rendered)
	m.viewport.SetContent(m.transcript.String())
	m.viewport.GotoBottom()
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	header := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Render(styleBold.Render(styleGreen.Render(m.worldTitle)))

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), m.input.View())
}

func formatReply(reply map[string]any) string {
	var b strings.Builder
	if msg, ok := reply["message"].(string); ok && msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	if errObj, ok := reply["error"].(map[string]any); ok {
		if msg, ok := errObj["message"].(string); ok {
			b.WriteString(styleError.Render(msg))
			b.WriteString("\n")
		}
	}
	if beats, ok := reply["turn_phase_messages"].([]string); ok {
		for _, beat := range beats {
			b.WriteString(beat)
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		b.WriteString(styleGray.Render("(no narration)"))
	}
	return b.String()
}
