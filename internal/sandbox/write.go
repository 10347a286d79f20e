package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// WriteMode selects how Write applies content to an existing file.
type WriteMode string

const (
	ModeOverwrite WriteMode = "overwrite"
	ModeAppend    WriteMode = "append"
)

// ParseWriteMode maps user-facing mode strings onto a WriteMode.
// The single-letter forms are accepted as aliases of the full names.
func ParseWriteMode(mode string) (WriteMode, error) {
	switch mode {
	case "", string(ModeOverwrite), "w":
		return ModeOverwrite, nil
	case string(ModeAppend), "a":
		return ModeAppend, nil
	default:
		return "", fmt.Errorf("mode must be %q or %q, got %q", ModeOverwrite, ModeAppend, mode)
	}
}

// Write stores content in a file under the base directory, creating
// parent directories as needed. Each call performs exactly one
// filesystem mutation: a full overwrite or a single append.
func (s *Sandbox) Write(name, content string, mode WriteMode) error {
	abs, err := s.resolver.Resolve(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		if os.IsPermission(err) {
			return &PermissionError{Name: name, Op: "write", Cause: err}
		}
		return &IOError{Name: name, Op: "writing", Cause: err}
	}

	switch mode {
	case ModeAppend:
		f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return wrapWriteError(name, err)
		}
		if _, err := f.WriteString(content); err != nil {
			f.Close()
			return wrapWriteError(name, err)
		}
		if err := f.Close(); err != nil {
			return wrapWriteError(name, err)
		}
	default:
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			return wrapWriteError(name, err)
		}
	}

	s.log.Debug("file written",
		zap.String("name", name),
		zap.String("mode", string(mode)),
		zap.Int("bytes", len(content)))
	return nil
}

func wrapWriteError(name string, err error) error {
	if os.IsPermission(err) {
		return &PermissionError{Name: name, Op: "write", Cause: err}
	}
	return &IOError{Name: name, Op: "writing", Cause: err}
}
