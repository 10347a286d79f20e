package agent

import (
	"sync"

	"github.com/dirant/dirant/internal/validator"
)

// DefaultHistoryWindow is how many recent turns are replayed into
// future prompts when no window is configured.
const DefaultHistoryWindow = 3

// Turn is one completed query/response exchange.
type Turn struct {
	Query    string
	Response string
	Category validator.Category
}

// Memory is an append-only log of conversation turns. The full log is
// retained for inspection; only the last `window` turns seed future
// prompts.
type Memory struct {
	mu     sync.Mutex
	turns  []Turn
	window int
}

// NewMemory creates a turn log with the given replay window. Windows
// below 1 fall back to the default.
func NewMemory(window int) *Memory {
	if window < 1 {
		window = DefaultHistoryWindow
	}
	return &Memory{window: window}
}

// Append records a completed turn.
func (m *Memory) Append(t Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, t)
}

// Recent returns a copy of the last `window` turns, oldest first.
func (m *Memory) Recent() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := len(m.turns) - m.window
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(m.turns)-start)
	copy(out, m.turns[start:])
	return out
}

// History returns a copy of the entire turn log, oldest first.
func (m *Memory) History() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len reports how many turns have been recorded.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Clear empties the log. Prompts already assembled are unaffected.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}
