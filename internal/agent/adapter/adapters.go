package adapter

import (
	"context"
	"errors"

	provider "github.com/dirant/dirant/internal/provider/models"
	"github.com/dirant/dirant/internal/sandbox"
)

// Tool names. Every name maps to exactly one handler in the registry.
const (
	ToolListFiles      = "list_files"
	ToolReadFile       = "read_file"
	ToolWriteFile      = "write_file"
	ToolDeleteFile     = "delete_file"
	ToolAnswerQuestion = "answer_question_about_files"
)

type listFilesRequest struct{}

type readFileRequest struct {
	Filename string `mapstructure:"filename"`
}

func (r readFileRequest) Validate() error {
	if r.Filename == "" {
		return errors.New("filename parameter is required")
	}
	return nil
}

type writeFileRequest struct {
	Filename string  `mapstructure:"filename"`
	Content  *string `mapstructure:"content"`
	Mode     string  `mapstructure:"mode"`
}

func (r writeFileRequest) Validate() error {
	if r.Filename == "" {
		return errors.New("filename parameter is required")
	}
	// Pointer distinguishes an omitted content argument from writing
	// an intentionally empty file.
	if r.Content == nil {
		return errors.New("content parameter is required")
	}
	if _, err := sandbox.ParseWriteMode(r.Mode); err != nil {
		return err
	}
	return nil
}

type writeFileResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Mode     string `json:"mode"`
	Bytes    int    `json:"bytes_written"`
}

type deleteFileRequest struct {
	Filename string `mapstructure:"filename"`
}

func (r deleteFileRequest) Validate() error {
	if r.Filename == "" {
		return errors.New("filename parameter is required")
	}
	return nil
}

type deleteFileResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
}

type answerQuestionRequest struct {
	Query string `mapstructure:"query"`
}

func (r answerQuestionRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query parameter is required")
	}
	return nil
}

// NewListFilesTool lists every file in the sandbox with metadata.
func NewListFilesTool(sb *sandbox.Sandbox) Tool {
	return NewBaseAdapter(
		ToolListFiles,
		"List all files in the working directory with metadata including name, size, and modification date",
		&provider.ParameterSchema{
			Type:       "object",
			Properties: map[string]provider.PropertySchema{},
		},
		func(_ context.Context, _ listFilesRequest) ([]sandbox.FileInfo, error) {
			return sb.List()
		},
	)
}

// NewReadFileTool reads a file's complete content.
func NewReadFileTool(sb *sandbox.Sandbox) Tool {
	return NewBaseAdapter(
		ToolReadFile,
		"Read the complete content of a specific file",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"filename": {
					Type:        "string",
					Description: "Name of the file to read",
				},
			},
			Required: []string{"filename"},
		},
		func(_ context.Context, req readFileRequest) (string, error) {
			return sb.Read(req.Filename)
		},
	)
}

// NewWriteFileTool writes or appends content to a file.
func NewWriteFileTool(sb *sandbox.Sandbox) Tool {
	return NewBaseAdapter(
		ToolWriteFile,
		"Write content to a file (create new or overwrite existing)",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"filename": {
					Type:        "string",
					Description: "Name of the file to write",
				},
				"content": {
					Type:        "string",
					Description: "Content to write to the file",
				},
				"mode": {
					Type:        "string",
					Enum:        []string{string(sandbox.ModeOverwrite), string(sandbox.ModeAppend)},
					Default:     string(sandbox.ModeOverwrite),
					Description: "Write mode: 'overwrite' to replace the file, 'append' to add to it",
				},
			},
			Required: []string{"filename", "content"},
		},
		func(_ context.Context, req writeFileRequest) (writeFileResponse, error) {
			mode, err := sandbox.ParseWriteMode(req.Mode)
			if err != nil {
				return writeFileResponse{}, err
			}
			if err := sb.Write(req.Filename, *req.Content, mode); err != nil {
				return writeFileResponse{}, err
			}
			return writeFileResponse{
				Success:  true,
				Filename: req.Filename,
				Mode:     string(mode),
				Bytes:    len(*req.Content),
			}, nil
		},
	)
}

// NewDeleteFileTool removes a file from the sandbox.
func NewDeleteFileTool(sb *sandbox.Sandbox) Tool {
	return NewBaseAdapter(
		ToolDeleteFile,
		"Delete a file from the working directory",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"filename": {
					Type:        "string",
					Description: "Name of the file to delete",
				},
			},
			Required: []string{"filename"},
		},
		func(_ context.Context, req deleteFileRequest) (deleteFileResponse, error) {
			if err := sb.Delete(req.Filename); err != nil {
				return deleteFileResponse{}, err
			}
			return deleteFileResponse{Success: true, Filename: req.Filename}, nil
		},
	)
}

// NewAnswerQuestionTool answers free-form questions about the files.
func NewAnswerQuestionTool(analyzer *sandbox.Analyzer) Tool {
	return NewBaseAdapter(
		ToolAnswerQuestion,
		"Answer intelligent questions about files by analyzing their contents, metadata, and patterns. Use this for questions like 'What does script.py do?', 'What is the purpose of config.json?', or general file analysis",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"query": {
					Type:        "string",
					Description: "Question about the files (e.g., 'What does hello.py do?', 'What is the largest file?', 'Which files contain Python code?')",
				},
			},
			Required: []string{"query"},
		},
		func(ctx context.Context, req answerQuestionRequest) (string, error) {
			return analyzer.AnswerQuestion(ctx, req.Query), nil
		},
	)
}

// DefaultTools assembles the standard five-tool set over a sandbox.
func DefaultTools(sb *sandbox.Sandbox, analyzer *sandbox.Analyzer) []Tool {
	return []Tool{
		NewListFilesTool(sb),
		NewReadFileTool(sb),
		NewWriteFileTool(sb),
		NewDeleteFileTool(sb),
		NewAnswerQuestionTool(analyzer),
	}
}
