package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirant/dirant/internal/agent"
	"github.com/dirant/dirant/internal/agent/adapter"
	provider "github.com/dirant/dirant/internal/provider/models"
	"github.com/dirant/dirant/internal/sandbox"
	"github.com/dirant/dirant/internal/validator"
)

type plainRenderer struct{}

func (plainRenderer) Render(markdown string, _ int) (string, error) {
	return markdown, nil
}

type stubProvider struct{}

func (stubProvider) Name() string  { return "stub" }
func (stubProvider) Model() string { return "stub-model" }

func (stubProvider) Generate(context.Context, *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{Type: provider.ResponseTypeText, Text: "ok"},
	}, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()

	dir := t.TempDir()
	sb, err := sandbox.New(dir, sandbox.Config{}, nil)
	require.NoError(t, err)
	analyzer := sandbox.NewAnalyzer(sb, nil, sandbox.AnalyzerConfig{}, nil)

	registry, err := adapter.NewRegistry(nil, adapter.DefaultTools(sb, analyzer)...)
	require.NoError(t, err)

	a := agent.New(stubProvider{}, registry, validator.NewChain(nil), dir, agent.Config{}, nil)
	return NewModel(context.Background(), a, plainRenderer{})
}

func resized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func TestSubmitQueryMarksBusy(t *testing.T) {
	m := resized(t, newTestModel(t))

	m.input.SetValue("list files")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.True(t, m.busy)
	assert.NotNil(t, cmd)
	last := m.messages[len(m.messages)-1]
	assert.Equal(t, "user", last.role)
	assert.Equal(t, "list files", last.content)
	assert.Empty(t, m.input.Value())
}

func TestResponseAppendsAssistantMessage(t *testing.T) {
	m := resized(t, newTestModel(t))
	m.busy = true

	updated, _ := m.Update(responseMsg(&agent.Response{
		Success:             true,
		Message:             "one file found",
		OperationsPerformed: []string{"list_files"},
	}))
	m = updated.(Model)

	assert.False(t, m.busy)
	last := m.messages[len(m.messages)-1]
	assert.Equal(t, "assistant", last.role)
	assert.Contains(t, last.content, "one file found")
	assert.Contains(t, last.content, "Tools used: list_files")
}

func TestEmptyInputIgnored(t *testing.T) {
	m := resized(t, newTestModel(t))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.False(t, m.busy)
}

func TestHelpCommand(t *testing.T) {
	m := resized(t, newTestModel(t))

	m.input.SetValue("/help")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.False(t, m.busy)
	last := m.messages[len(m.messages)-1]
	assert.Contains(t, last.content, "What I can do")
}

func TestClearCommand(t *testing.T) {
	m := resized(t, newTestModel(t))
	m.messages = append(m.messages, message{role: "user", content: "old"})

	m.input.SetValue("/clear")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.Len(t, m.messages, 1)
	assert.Contains(t, m.messages[0].content, "cleared")
}

type ctxProvider struct{}

func (ctxProvider) Name() string  { return "ctx" }
func (ctxProvider) Model() string { return "ctx-model" }

func (ctxProvider) Generate(ctx context.Context, _ *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{Type: provider.ResponseTypeText, Text: "ok"},
	}, nil
}

func TestProcessQueryHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	sb, err := sandbox.New(dir, sandbox.Config{}, nil)
	require.NoError(t, err)
	analyzer := sandbox.NewAnalyzer(sb, nil, sandbox.AnalyzerConfig{}, nil)
	registry, err := adapter.NewRegistry(nil, adapter.DefaultTools(sb, analyzer)...)
	require.NoError(t, err)
	a := agent.New(ctxProvider{}, registry, validator.NewChain(nil), dir, agent.Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := processQuery(ctx, a, "list my files")()
	resp := (*agent.Response)(msg.(responseMsg))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Technical error")
}

func TestQuitKeys(t *testing.T) {
	m := resized(t, newTestModel(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
