package validator

import (
	"context"
	"strings"
)

// Curated vocabularies for the deterministic stage. Substring checks
// against the lowercased query, in strict priority order.
var (
	// Always approved, highest priority.
	fileAnalysisPatterns = []string{
		"cosa fa", "what does", "che cosa fa", "what is in", "analyze",
		"analizza", "summarize", "riassumi", "explain", "spiega",
	}

	fileOperationKeywords = []string{
		"read", "write", "list", "delete", "create", "analyze",
	}

	fileExtensions = []string{
		".py", ".txt", ".json", ".csv", ".md", ".log",
	}

	offTopicPatterns = []string{
		"hello", "hi", "how are you", "weather", "news", "politics",
		"relationship", "love", "money", "health", "recipe", "cooking",
		"sport", "movie", "music",
	}

	filePatterns = []string{
		"file", "read", "write", "list", "delete", "create", "content",
		"directory", "folder", "document", "text", ".py", ".txt", ".json",
		".csv", ".md", "cosa fa", "what does", "analyze", "analizza",
	}
)

// PatternStrategy is the terminal validation stage. It is pure and
// total: it always returns a decision and never an error.
type PatternStrategy struct{}

// NewPatternStrategy creates the deterministic fallback stage.
func NewPatternStrategy() *PatternStrategy {
	return &PatternStrategy{}
}

// Name implements Strategy.
func (s *PatternStrategy) Name() string { return "pattern" }

// Validate implements Strategy with curated substring rules.
func (s *PatternStrategy) Validate(_ context.Context, query string) (*Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	if containsAny(q, fileAnalysisPatterns) {
		return &Result{
			Approved: true,
			Message:  "Query is asking about file analysis/content",
			Category: CategoryApproved,
		}, nil
	}

	if containsAny(q, fileOperationKeywords) {
		return &Result{
			Approved: true,
			Message:  "Query contains file operation keywords",
			Category: CategoryApproved,
		}, nil
	}

	if containsAny(q, fileExtensions) {
		return &Result{
			Approved: true,
			Message:  "Query mentions specific file",
			Category: CategoryApproved,
		}, nil
	}

	if containsAny(q, offTopicPatterns) && !containsAny(q, filePatterns) {
		return &Result{
			Approved: false,
			Message: formatRejection(
				"This appears to be a general question outside my file operations scope.",
				CategoryRejectedOffTopic),
			Category: CategoryRejectedOffTopic,
		}, nil
	}

	if containsAny(q, filePatterns) {
		return &Result{
			Approved: true,
			Message:  "Query appears to be file-related",
			Category: CategoryApproved,
		}, nil
	}

	// Default-deny: ambiguous queries are rejected, not guessed at.
	return &Result{
		Approved: false,
		Message: formatRejection(
			"Your request is too generic. Please specify what you want to do with files.",
			CategoryRejectedInappropriate),
		Category: CategoryRejectedInappropriate,
	}, nil
}

func containsAny(q string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}
