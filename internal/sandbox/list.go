package sandbox

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileInfo describes a single file in the base directory.
type FileInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension"`
}

// List returns every regular file in the base directory with metadata,
// sorted by name. Files whose metadata cannot be read are skipped.
// The result is the complete set; nothing is filtered or truncated.
func (s *Sandbox) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.BaseDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &BaseDirError{Dir: s.BaseDir()}
		}
		return nil, &IOError{Name: s.BaseDir(), Op: "listing", Cause: err}
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.log.Debug("skipping unreadable entry",
				zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, FileInfo{
			Name:      entry.Name(),
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Extension: strings.ToLower(filepath.Ext(entry.Name())),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}
