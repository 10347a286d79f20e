package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryDetectorDetect(t *testing.T) {
	d := NewBinaryDetector(0)

	tests := []struct {
		name       string
		file       string
		content    []byte
		wantBinary bool
		wantType   string
	}{
		{
			name:       "pdf magic bytes",
			file:       "report.pdf",
			content:    []byte("%PDF-1.4 rest of document"),
			wantBinary: true,
			wantType:   "PDF document",
		},
		{
			name:       "png magic bytes",
			file:       "image.png",
			content:    []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A},
			wantBinary: true,
			wantType:   "PNG image",
		},
		{
			name:       "elf header",
			file:       "a.out",
			content:    []byte{0x7F, 'E', 'L', 'F', 2, 1},
			wantBinary: true,
			wantType:   "executable",
		},
		{
			name:       "null bytes without magic",
			file:       "data.bin",
			content:    []byte{'a', 'b', 0x00, 'c'},
			wantBinary: true,
			wantType:   "bin file",
		},
		{
			name:    "plain text",
			file:    "notes.txt",
			content: []byte("hello world\n"),
		},
		{
			name:    "empty content",
			file:    "empty.txt",
			content: []byte{},
		},
		{
			name:    "utf16 le bom with embedded nulls",
			file:    "wide.txt",
			content: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00},
		},
		{
			name:    "utf16 be bom with embedded nulls",
			file:    "wide.txt",
			content: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'},
		},
		{
			name:    "utf32 le bom",
			file:    "wide.txt",
			content: []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileType, binary := d.Detect(tt.file, tt.content)
			assert.Equal(t, tt.wantBinary, binary)
			if tt.wantBinary {
				assert.Equal(t, tt.wantType, fileType)
			}
		})
	}
}

func TestBinaryDetectorSampleWindow(t *testing.T) {
	d := NewBinaryDetector(4)

	// Null byte beyond the sample window is not inspected.
	content := []byte{'a', 'b', 'c', 'd', 0x00}
	assert.False(t, d.IsBinaryContent(content))

	// Inside the window it is.
	content = []byte{'a', 0x00, 'c', 'd'}
	assert.True(t, d.IsBinaryContent(content))
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "PDF document", FileType("doc.pdf"))
	assert.Equal(t, "JPEG image", FileType("photo.JPG"))
	assert.Equal(t, "xyz file", FileType("data.xyz"))
	assert.Equal(t, "binary file", FileType("noext"))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{68, "68 bytes"},
		{1023, "1023 bytes"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{2 * 1024 * 1024 * 1024, "2.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.size))
	}
}
