package agent

import (
	"encoding/json"

	"github.com/dirant/dirant/internal/agent/adapter"
	"github.com/dirant/dirant/internal/sandbox"
)

// OperationType tags a Response with the dominant operation performed.
type OperationType string

const (
	OpConversation OperationType = "conversation"
	OpList         OperationType = "list"
	OpRead         OperationType = "read"
	OpWrite        OperationType = "write"
	OpDelete       OperationType = "delete"
	OpAnalysis     OperationType = "analysis"
	OpRejected     OperationType = "rejected"
	OpError        OperationType = "error_with_fallback"
)

// Response is the structured output contract consumed by the CLI and
// server shells.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Type    OperationType `json:"type"`

	// Populated per operation: the complete listing for list
	// operations, verbatim content for reads, analysis text for
	// analysis queries.
	Files          []sandbox.FileInfo `json:"files,omitempty"`
	FileContent    string             `json:"file_content,omitempty"`
	AnalysisResult string             `json:"analysis_result,omitempty"`

	OperationsPerformed []string `json:"operations_performed,omitempty"`
	Reasoning           string   `json:"reasoning,omitempty"`
}

// operation records one executed tool call for the response trace.
type operation struct {
	name        string
	observation string
	failed      bool
}

// buildResponse folds the executed operations into the structured
// response fields. Mutating operations outrank queries when choosing
// the type tag.
func buildResponse(message string, ops []operation) *Response {
	resp := &Response{
		Success:   true,
		Message:   message,
		Type:      OpConversation,
		Reasoning: "Processed successfully",
	}

	for _, op := range ops {
		resp.OperationsPerformed = append(resp.OperationsPerformed, op.name)
		if op.failed {
			continue
		}

		switch op.name {
		case adapter.ToolListFiles:
			var files []sandbox.FileInfo
			if err := json.Unmarshal([]byte(op.observation), &files); err == nil {
				resp.Files = files
			}
			resp.Type = pickType(resp.Type, OpList)
		case adapter.ToolReadFile:
			resp.FileContent = op.observation
			resp.Type = pickType(resp.Type, OpRead)
		case adapter.ToolWriteFile:
			resp.Type = pickType(resp.Type, OpWrite)
		case adapter.ToolDeleteFile:
			resp.Type = pickType(resp.Type, OpDelete)
		case adapter.ToolAnswerQuestion:
			resp.AnalysisResult = op.observation
			resp.Type = pickType(resp.Type, OpAnalysis)
		}
	}

	return resp
}

// typeRank orders operation tags so that mutations dominate queries
// when one turn performed several operations.
var typeRank = map[OperationType]int{
	OpConversation: 0,
	OpList:         1,
	OpRead:         2,
	OpAnalysis:     3,
	OpWrite:        4,
	OpDelete:       5,
}

func pickType(current, candidate OperationType) OperationType {
	if typeRank[candidate] > typeRank[current] {
		return candidate
	}
	return current
}
