package sandbox

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed enumeration of sandbox failure categories.
// Callers branch on the kind; the rendered messages keep the phrasing
// users and tests have historically matched on.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindNotAFile   ErrorKind = "not_a_file"
	KindPathEscape ErrorKind = "path_escape"
	KindBinaryFile ErrorKind = "binary_file"
	KindDecode     ErrorKind = "decode"
	KindTooLarge   ErrorKind = "too_large"
	KindPermission ErrorKind = "permission_denied"
	KindIO         ErrorKind = "io_failure"
	KindBaseDir    ErrorKind = "base_directory"
)

// kinder is implemented by every sandbox error type.
type kinder interface {
	Kind() ErrorKind
}

// KindOf returns the kind of a sandbox error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}

// NotFoundError indicates the named file does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File %s does not exist", e.Name)
}

func (e *NotFoundError) Kind() ErrorKind { return KindNotFound }

// NotAFileError indicates the path resolved to something other than a
// regular file (typically a directory).
type NotAFileError struct {
	Name string
}

func (e *NotAFileError) Error() string {
	return fmt.Sprintf("%s is not a file", e.Name)
}

func (e *NotAFileError) Kind() ErrorKind { return KindNotAFile }

// PathEscapeError indicates the resolved path left the base directory.
type PathEscapeError struct {
	Name string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("File %s is not within the base directory", e.Name)
}

func (e *PathEscapeError) Kind() ErrorKind { return KindPathEscape }

// BinaryFileError indicates the file content was detected as binary.
type BinaryFileError struct {
	Name     string
	FileType string
	Size     int64
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("Cannot read %s: this appears to be a binary file (%s, %s). Binary files cannot be displayed as text.",
		e.Name, e.FileType, FormatSize(e.Size))
}

func (e *BinaryFileError) Kind() ErrorKind { return KindBinaryFile }

// DecodeError indicates the file content is not valid text in the
// requested encoding.
type DecodeError struct {
	Name     string
	FileType string
	Size     int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Cannot read %s: this appears to be a %s file (%s) that cannot be decoded as text.",
		e.Name, e.FileType, FormatSize(e.Size))
}

func (e *DecodeError) Kind() ErrorKind { return KindDecode }

// TooLargeError indicates the file exceeds the configured size limit.
type TooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("Cannot read %s: file is too large (%s, limit %s)",
		e.Name, FormatSize(e.Size), FormatSize(e.Limit))
}

func (e *TooLargeError) Kind() ErrorKind { return KindTooLarge }

// PermissionError indicates the operating system denied the operation.
type PermissionError struct {
	Name  string
	Op    string // "read", "write", "delete"
	Cause error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("Insufficient permissions to %s %s: %v", e.Op, e.Name, e.Cause)
}

func (e *PermissionError) Unwrap() error { return e.Cause }

func (e *PermissionError) Kind() ErrorKind { return KindPermission }

// IOError wraps an unexpected operating system failure.
type IOError struct {
	Name  string
	Op    string // "reading", "writing", "deleting", "listing"
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error while %s file %s: %v", e.Op, e.Name, e.Cause)
}

func (e *IOError) Unwrap() error { return e.Cause }

func (e *IOError) Kind() ErrorKind { return KindIO }

// BaseDirError indicates the configured base directory is unusable.
type BaseDirError struct {
	Dir   string
	Cause error
}

func (e *BaseDirError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Base directory %s is not usable: %v", e.Dir, e.Cause)
	}
	return fmt.Sprintf("Base directory %s does not exist", e.Dir)
}

func (e *BaseDirError) Unwrap() error { return e.Cause }

func (e *BaseDirError) Kind() ErrorKind { return KindBaseDir }
