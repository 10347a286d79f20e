package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusBusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("dirant · file operations agent"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) statusLine() string {
	info := m.agent.Info()
	if m.busy {
		return statusBusyStyle.Render(fmt.Sprintf("%s Working...  %s", m.spin.View(), info.ModelName))
	}
	return statusStyle.Render(fmt.Sprintf("Ready  %s  (%d turns)", info.ModelName, info.ConversationLength))
}

// renderMessages formats the chat history for the viewport. Assistant
// messages go through the markdown renderer; failures fall back to
// plain text.
func (m Model) renderMessages() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var lines []string
	for _, msg := range m.messages {
		switch msg.role {
		case "user":
			lines = append(lines, userStyle.Render("You: ")+msg.content)
		case "system":
			lines = append(lines, systemStyle.Render(msg.content))
		default:
			rendered, err := m.renderer.Render(msg.content, width)
			if err != nil {
				rendered = msg.content
			}
			lines = append(lines, rendered)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
