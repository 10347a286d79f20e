// Package ui implements the interactive chat REPL built on Bubble Tea.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dirant/dirant/internal/agent"
)

// message is one rendered chat entry.
type message struct {
	role    string // "user", "assistant", "system"
	content string
}

// responseMsg delivers a completed agent response to the update loop.
type responseMsg *agent.Response

// Model is the Bubble Tea model for the chat session.
type Model struct {
	ctx      context.Context
	agent    *agent.Agent
	renderer MarkdownRenderer

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	messages []message
	busy     bool
	ready    bool
	width    int
	height   int
}

// NewModel builds the REPL model over an assembled agent. The context
// bounds in-flight model calls so a signal can cancel them.
func NewModel(ctx context.Context, a *agent.Agent, renderer MarkdownRenderer) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask me about your files..."
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:      ctx,
		agent:    a,
		renderer: renderer,
		input:    ti,
		viewport: viewport.New(80, 20),
		spin:     sp,
		messages: []message{{
			role:    "system",
			content: "Connected. Type a request, /help for guidance, /quit to exit.",
		}},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// Run starts the REPL and blocks until the user exits or the context
// is cancelled.
func Run(ctx context.Context, a *agent.Agent) error {
	renderer, err := NewGlamourRenderer()
	if err != nil {
		return err
	}

	program := tea.NewProgram(NewModel(ctx, a, renderer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// processQuery runs the agent off the update loop and reports back.
func processQuery(ctx context.Context, a *agent.Agent, query string) tea.Cmd {
	return func() tea.Msg {
		return responseMsg(a.ProcessQuery(ctx, query))
	}
}
