package validator

import "fmt"

const scopePreamble = "I am designed to assist only with file operations within a specific directory."

const capabilityList = "I can help you with:\n" +
	"- Listing files in the directory\n" +
	"- Reading file contents\n" +
	"- Writing or creating files\n" +
	"- Deleting files\n" +
	"- Answering questions about file contents"

// formatRejection renders the fixed refusal template: scope preamble,
// category-specific sentence, then the capability list.
func formatRejection(reason string, category Category) string {
	var specific string
	switch category {
	case CategoryRejectedInappropriate:
		specific = fmt.Sprintf("Your request appears to be outside my scope. %s", reason)
	case CategoryRejectedUnsafe:
		specific = fmt.Sprintf("I cannot process requests that might be unsafe. %s", reason)
	case CategoryRejectedOffTopic:
		specific = fmt.Sprintf("Your question is not related to file operations. %s", reason)
	default:
		specific = reason
	}

	return fmt.Sprintf("%s %s\n\n%s", scopePreamble, specific, capabilityList)
}
