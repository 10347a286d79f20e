package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Resolver confines file names to a single base directory.
type Resolver struct {
	baseDir string
}

// NewResolver creates a resolver for the given canonical base directory.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{baseDir: baseDir}
}

// CanonicalizeBase makes a base directory path absolute, resolves
// symlinks, and verifies it exists and is a directory.
func CanonicalizeBase(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &BaseDirError{Dir: dir, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &BaseDirError{Dir: abs}
		}
		return "", &BaseDirError{Dir: abs, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &BaseDirError{Dir: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &NotAFileError{Name: resolved}
	}
	return resolved, nil
}

// maxSymlinkHops bounds manual link walking, mirroring the kernel's
// nesting limit.
const maxSymlinkHops = 40

// Resolve turns a user-supplied file name into an absolute path and
// validates it stays within the base directory. Absolute inputs are
// accepted only when they already point inside the base. The check
// holds for the symlink-resolved path as well: a link inside the base
// pointing outside it is rejected, never followed.
func (r *Resolver) Resolve(name string) (string, error) {
	var abs string
	if filepath.IsAbs(name) {
		abs = filepath.Clean(name)
	} else {
		abs = filepath.Clean(filepath.Join(r.baseDir, name))
	}

	if !r.contains(abs) {
		return "", &PathEscapeError{Name: name}
	}

	// Lexical containment is not enough. The target may not exist yet
	// (a file about to be written), so resolution walks the deepest
	// existing ancestor and any trailing link chain by hand.
	resolved, err := r.followLinks(abs, 0)
	if err != nil {
		return "", &IOError{Name: name, Op: "resolving", Cause: err}
	}
	if !r.contains(resolved) {
		return "", &PathEscapeError{Name: name}
	}
	return resolved, nil
}

// contains reports whether path is the base itself or a child of it.
func (r *Resolver) contains(path string) bool {
	return path == r.baseDir || strings.HasPrefix(path, r.baseDir+string(filepath.Separator))
}

// followLinks returns path with every symlink followed, including a
// dangling link in the final component, which EvalSymlinks alone
// cannot resolve but writes would still traverse.
func (r *Resolver) followLinks(path string, hops int) (string, error) {
	if hops > maxSymlinkHops {
		return "", errors.New("too many levels of symbolic links")
	}

	resolved, err := resolveExisting(path)
	if err != nil {
		return "", err
	}

	info, err := os.Lstat(resolved)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return resolved, nil
	}

	target, err := os.Readlink(resolved)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(resolved), target)
	}
	return r.followLinks(filepath.Clean(target), hops+1)
}

// resolveExisting evaluates symlinks over the deepest existing prefix
// of path and reattaches the non-existent remainder unchanged.
func resolveExisting(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	parent := filepath.Dir(path)
	if parent == path {
		return path, nil
	}
	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(path)), nil
}

// BaseDir returns the canonical base directory.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}
