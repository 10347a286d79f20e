package ui

import "github.com/charmbracelet/glamour"

// MarkdownRenderer renders markdown for terminal display. Tests
// substitute a pass-through implementation.
type MarkdownRenderer interface {
	Render(markdown string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour's auto style.
type GlamourRenderer struct{}

// NewGlamourRenderer creates the production renderer.
func NewGlamourRenderer() (*GlamourRenderer, error) {
	return &GlamourRenderer{}, nil
}

// Render implements MarkdownRenderer. A renderer is built per call
// because word wrap is fixed at construction time and the terminal
// width changes.
func (r *GlamourRenderer) Render(markdown string, width int) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return tr.Render(markdown)
}
