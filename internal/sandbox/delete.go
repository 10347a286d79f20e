package sandbox

import (
	"os"

	"go.uber.org/zap"
)

// Delete removes a file from the base directory. Directories are
// refused; only regular files can be deleted.
func (s *Sandbox) Delete(name string) error {
	abs, err := s.resolver.Resolve(name)
	if err != nil {
		return err
	}

	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Name: name}
		}
		if os.IsPermission(err) {
			return &PermissionError{Name: name, Op: "delete", Cause: err}
		}
		return &IOError{Name: name, Op: "deleting", Cause: err}
	}
	if info.IsDir() {
		return &NotAFileError{Name: name}
	}

	if err := os.Remove(abs); err != nil {
		if os.IsPermission(err) {
			return &PermissionError{Name: name, Op: "delete", Cause: err}
		}
		return &IOError{Name: name, Op: "deleting", Cause: err}
	}

	s.log.Debug("file deleted", zap.String("name", name))
	return nil
}
