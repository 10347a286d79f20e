package ui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dirant/dirant/internal/agent"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.input.Width = msg.Width - 4
		m.ready = true
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				break
			}
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				break
			}
			m.input.Reset()

			if cmd, handled := m.handleCommand(query); handled {
				return m, cmd
			}

			m.messages = append(m.messages, message{role: "user", content: query})
			m.busy = true
			m.refreshViewport()
			return m, tea.Batch(processQuery(m.ctx, m.agent, query), m.spin.Tick)
		}

	case responseMsg:
		m.busy = false
		m.messages = append(m.messages, message{
			role:    "assistant",
			content: renderResponse((*agent.Response)(msg)),
		})
		m.refreshViewport()

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleCommand intercepts slash commands. Returns handled=false for
// ordinary queries.
func (m *Model) handleCommand(query string) (tea.Cmd, bool) {
	switch query {
	case "/quit", "/exit":
		return tea.Quit, true
	case "/help":
		m.messages = append(m.messages, message{role: "assistant", content: m.agent.Help()})
		m.refreshViewport()
		return nil, true
	case "/clear":
		m.agent.ClearHistory()
		m.messages = []message{{role: "system", content: "Conversation history cleared."}}
		m.refreshViewport()
		return nil, true
	case "/info":
		info, err := json.MarshalIndent(m.agent.Info(), "", "  ")
		if err != nil {
			return nil, true
		}
		m.messages = append(m.messages, message{role: "system", content: string(info)})
		m.refreshViewport()
		return nil, true
	}
	return nil, false
}

// renderResponse flattens a structured response into chat text. The
// message already embeds listing/content/analysis details, so only the
// operation trace is appended.
func renderResponse(resp *agent.Response) string {
	if resp == nil {
		return "No response."
	}
	text := resp.Message
	if len(resp.OperationsPerformed) > 0 {
		text += "\n\n*Tools used: " + strings.Join(resp.OperationsPerformed, ", ") + "*"
	}
	return text
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
