package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	sb, err := New(t.TempDir(), Config{}, nil)
	require.NoError(t, err)
	return sb
}

func TestList(t *testing.T) {
	sb := newTestSandbox(t)

	require.NoError(t, sb.Write("b.txt", "bb", ModeOverwrite))
	require.NoError(t, sb.Write("a.log", "a", ModeOverwrite))
	require.NoError(t, sb.Write("c.json", "{}", ModeOverwrite))
	require.NoError(t, os.Mkdir(filepath.Join(sb.BaseDir(), "subdir"), 0o755))

	files, err := sb.List()
	require.NoError(t, err)
	require.Len(t, files, 3, "directories must not appear in the listing")

	// Sorted by name, complete metadata.
	assert.Equal(t, "a.log", files[0].Name)
	assert.Equal(t, "b.txt", files[1].Name)
	assert.Equal(t, "c.json", files[2].Name)
	assert.Equal(t, int64(2), files[1].Size)
	assert.Equal(t, ".log", files[0].Extension)
	assert.False(t, files[0].Modified.IsZero())
}

func TestListEmptyDirectory(t *testing.T) {
	sb := newTestSandbox(t)
	files, err := sb.List()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadWriteRoundTrip(t *testing.T) {
	sb := newTestSandbox(t)

	content := "first line\nsecond line\n"
	require.NoError(t, sb.Write("notes.txt", content, ModeOverwrite))

	got, err := sb.Read("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Overwrite replaces, append concatenates exactly once.
	require.NoError(t, sb.Write("notes.txt", "fresh", ModeOverwrite))
	require.NoError(t, sb.Write("notes.txt", " extra", ModeAppend))

	got, err = sb.Read("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "fresh extra", got)
}

func TestWriteCreatesParents(t *testing.T) {
	sb := newTestSandbox(t)

	require.NoError(t, sb.Write("nested/deep/file.txt", "x", ModeOverwrite))
	got, err := sb.Read("nested/deep/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestAppendCreatesMissingFile(t *testing.T) {
	sb := newTestSandbox(t)

	require.NoError(t, sb.Write("new.txt", "start", ModeAppend))
	got, err := sb.Read("new.txt")
	require.NoError(t, err)
	assert.Equal(t, "start", got)
}

func TestReadErrors(t *testing.T) {
	sb := newTestSandbox(t)
	require.NoError(t, os.Mkdir(filepath.Join(sb.BaseDir(), "adir"), 0o755))

	t.Run("missing file", func(t *testing.T) {
		_, err := sb.Read("absent.txt")
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := sb.Read("adir")
		require.Error(t, err)
		assert.Equal(t, KindNotAFile, KindOf(err))
	})

	t.Run("path escape never returns content", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(sb.BaseDir()), "secret.txt")
		require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

		content, err := sb.Read("../secret.txt")
		require.Error(t, err)
		assert.Empty(t, content)
		assert.Equal(t, KindPathEscape, KindOf(err))
		assert.Contains(t, err.Error(), "is not within the base directory")
	})

	t.Run("binary file names its type", func(t *testing.T) {
		path := filepath.Join(sb.BaseDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 binary payload"), 0o644))

		_, err := sb.Read("doc.pdf")
		require.Error(t, err)
		assert.Equal(t, KindBinaryFile, KindOf(err))
		assert.Contains(t, err.Error(), "PDF document")
		assert.Contains(t, err.Error(), "binary file")
	})

	t.Run("too large", func(t *testing.T) {
		small, err := New(sb.BaseDir(), Config{MaxFileSize: 4}, nil)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(sb.BaseDir(), "big.txt"), []byte("more than four"), 0o644))

		_, err = small.Read("big.txt")
		require.Error(t, err)
		assert.Equal(t, KindTooLarge, KindOf(err))
	})
}

func TestSymlinkEscape(t *testing.T) {
	sb := newTestSandbox(t)
	outside := t.TempDir()

	secret := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o644))
	require.NoError(t, os.Symlink(secret, filepath.Join(sb.BaseDir(), "link.txt")))

	content, err := sb.Read("link.txt")
	require.Error(t, err)
	assert.Empty(t, content)
	assert.Equal(t, KindPathEscape, KindOf(err))
	assert.Contains(t, err.Error(), "is not within the base directory")

	require.Error(t, sb.Write("link.txt", "overwritten", ModeOverwrite))
	require.Error(t, sb.Delete("link.txt"))

	// The outside target stays untouched.
	data, readErr := os.ReadFile(secret)
	require.NoError(t, readErr)
	assert.Equal(t, "top secret", string(data))
}

func TestWritePathEscape(t *testing.T) {
	sb := newTestSandbox(t)

	err := sb.Write("../evil.txt", "payload", ModeOverwrite)
	require.Error(t, err)
	assert.Equal(t, KindPathEscape, KindOf(err))

	_, statErr := os.Stat(filepath.Join(filepath.Dir(sb.BaseDir()), "evil.txt"))
	assert.True(t, os.IsNotExist(statErr), "escaping write must not create a file")
}

func TestDelete(t *testing.T) {
	sb := newTestSandbox(t)
	require.NoError(t, sb.Write("doomed.txt", "bye", ModeOverwrite))
	require.NoError(t, os.Mkdir(filepath.Join(sb.BaseDir(), "keep"), 0o755))

	require.NoError(t, sb.Delete("doomed.txt"))
	_, err := sb.Read("doomed.txt")
	assert.Equal(t, KindNotFound, KindOf(err))

	t.Run("missing file", func(t *testing.T) {
		err := sb.Delete("doomed.txt")
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("directory refused", func(t *testing.T) {
		err := sb.Delete("keep")
		require.Error(t, err)
		assert.Equal(t, KindNotAFile, KindOf(err))
	})

	t.Run("escape refused", func(t *testing.T) {
		err := sb.Delete("../anything")
		require.Error(t, err)
		assert.Equal(t, KindPathEscape, KindOf(err))
	})
}

func TestParseWriteMode(t *testing.T) {
	tests := []struct {
		input   string
		want    WriteMode
		wantErr bool
	}{
		{input: "", want: ModeOverwrite},
		{input: "overwrite", want: ModeOverwrite},
		{input: "append", want: ModeAppend},
		{input: "w", want: ModeOverwrite},
		{input: "a", want: ModeAppend},
		{input: "rw", wantErr: true},
	}
	for _, tt := range tests {
		mode, err := ParseWriteMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, mode)
	}
}
