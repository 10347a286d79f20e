package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dirant/dirant/internal/validator"
)

func turn(q string) Turn {
	return Turn{Query: q, Response: "r:" + q, Category: validator.CategoryApproved}
}

func TestMemoryReplayWindowBounds(t *testing.T) {
	m := NewMemory(3)
	for _, q := range []string{"a", "b", "c", "d", "e"} {
		m.Append(turn(q))
	}

	recent := m.Recent()
	assert.Len(t, recent, 3)
	assert.Equal(t, "c", recent[0].Query)
	assert.Equal(t, "e", recent[2].Query)

	// The full log keeps everything.
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, "a", m.History()[0].Query)
}

func TestMemoryRecentUnderfilledWindow(t *testing.T) {
	m := NewMemory(3)
	m.Append(turn("only"))

	recent := m.Recent()
	assert.Len(t, recent, 1)
	assert.Equal(t, "only", recent[0].Query)
}

func TestMemoryHistoryIsACopy(t *testing.T) {
	m := NewMemory(3)
	m.Append(turn("a"))

	h := m.History()
	h[0].Query = "mutated"

	assert.Equal(t, "a", m.History()[0].Query)
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory(3)
	m.Append(turn("a"))
	m.Append(turn("b"))

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Recent())
}

func TestMemoryDefaultWindow(t *testing.T) {
	m := NewMemory(0)
	for _, q := range []string{"a", "b", "c", "d"} {
		m.Append(turn(q))
	}
	assert.Len(t, m.Recent(), DefaultHistoryWindow)
}

func TestRequiresTools(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"list files", true},
		{"read example.txt and summarize", true},
		{"what's the largest file?", true},
		{"help", false},
		{"what can you do", false},
		{"who are you", false},
		{"hi", false},
		{"please summarize everything in there right now", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requiresTools(tt.query), tt.query)
	}
}
