package sandbox

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Read returns the full content of a file in the base directory.
// It fails with a typed error when the path escapes the base, the file
// is missing, is a directory, exceeds the size limit, or holds binary
// or undecodable content.
func (s *Sandbox) Read(name string) (string, error) {
	abs, err := s.resolver.Resolve(name)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Name: name}
		}
		if os.IsPermission(err) {
			return "", &PermissionError{Name: name, Op: "read", Cause: err}
		}
		return "", &IOError{Name: name, Op: "reading", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return "", &NotAFileError{Name: name}
	}
	if info.Size() > s.maxFileSize {
		return "", &TooLargeError{Name: name, Size: info.Size(), Limit: s.maxFileSize}
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsPermission(err) {
			return "", &PermissionError{Name: name, Op: "read", Cause: err}
		}
		return "", &IOError{Name: name, Op: "reading", Cause: err}
	}

	if fileType, binary := s.detector.Detect(name, content); binary {
		s.log.Debug("binary content rejected",
			zap.String("name", name), zap.String("type", fileType))
		return "", &BinaryFileError{Name: name, FileType: fileType, Size: info.Size()}
	}

	if !utf8.Valid(content) {
		return "", &DecodeError{Name: name, FileType: FileType(name), Size: info.Size()}
	}

	return string(content), nil
}
