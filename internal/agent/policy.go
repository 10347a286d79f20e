package agent

import "strings"

// Vocabulary for the mandatory-tool-use policy. Queries matching the
// help vocabulary may be answered directly; file-operation vocabulary
// forces tool use.
var (
	helpKeywords = []string{
		"help", "what can you do", "how do you work", "capabilities",
		"what are you", "who are you", "explain", "describe yourself",
		"what is", "how to use",
	}

	toolKeywords = []string{
		"file", "files", "list", "read", "write", "create", "delete",
		"remove", "directory", "folder", "content", "text", "data",
		"json", "csv", "log", "size", "largest", "smallest", "modified",
		"recent", "analyze", "find", "search", "contains", "backup",
		"copy", "save", "load", "open",
	}
)

// requiresTools decides whether a query must be answered through tool
// calls. Help and about-me questions are exempt; file vocabulary forces
// tools; very short generic queries do not need them; everything else
// defaults to requiring tools.
func requiresTools(query string) bool {
	q := strings.ToLower(query)

	for _, kw := range helpKeywords {
		if strings.Contains(q, kw) {
			return false
		}
	}
	for _, kw := range toolKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	if len(strings.TrimSpace(query)) < 10 {
		return false
	}
	return true
}
