package sandbox

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultBinarySampleSize is the number of leading bytes inspected for
// binary content when no sample size is configured.
const DefaultBinarySampleSize = 1024

// signature pairs a leading magic-byte sequence with a human-readable
// file type for error messages.
type signature struct {
	magic    []byte
	fileType string
}

var signatures = []signature{
	{[]byte("%PDF"), "PDF document"},
	{[]byte{0x89, 'P', 'N', 'G'}, "PNG image"},
	{[]byte{0xFF, 0xD8, 0xFF}, "JPEG image"},
	{[]byte("GIF8"), "GIF image"},
	{[]byte{0x7F, 'E', 'L', 'F'}, "executable"},
	{[]byte("PK\x03\x04"), "ZIP archive"},
	{[]byte("PK\x05\x06"), "ZIP archive"},
	{[]byte("Rar!"), "RAR archive"},
	{[]byte("SQLite format 3"), "SQLite database"},
}

// extensionTypes names well-known binary formats by extension for
// more informative error messages when magic bytes are inconclusive.
var extensionTypes = map[string]string{
	".pdf":  "PDF document",
	".docx": "Word document",
	".xlsx": "Excel spreadsheet",
	".pptx": "PowerPoint presentation",
	".zip":  "ZIP archive",
	".rar":  "RAR archive",
	".7z":   "7-Zip archive",
	".jpg":  "JPEG image",
	".jpeg": "JPEG image",
	".png":  "PNG image",
	".gif":  "GIF image",
	".bmp":  "Bitmap image",
	".mp3":  "MP3 audio",
	".wav":  "WAV audio",
	".mp4":  "MP4 video",
	".avi":  "AVI video",
	".exe":  "executable",
	".dll":  "dynamic library",
	".so":   "shared library",
	".db":   "database",
}

// BinaryDetector classifies file content as binary using magic-byte
// signatures and a null-byte scan, with UTF-16/32 BOMs exempted.
type BinaryDetector struct {
	SampleSize int
}

// NewBinaryDetector creates a detector sampling the given number of
// leading bytes. Non-positive sizes fall back to the default.
func NewBinaryDetector(sampleSize int) *BinaryDetector {
	if sampleSize <= 0 {
		sampleSize = DefaultBinarySampleSize
	}
	return &BinaryDetector{SampleSize: sampleSize}
}

// Detect reports whether content is binary and, if so, the detected
// file type. The name is used only to improve the type description.
func (d *BinaryDetector) Detect(name string, content []byte) (fileType string, binary bool) {
	for _, sig := range signatures {
		if bytes.HasPrefix(content, sig.magic) {
			return sig.fileType, true
		}
	}

	if !d.IsBinaryContent(content) {
		return "", false
	}

	return FileType(name), true
}

// IsBinaryContent checks for null bytes in the sample window.
// UTF-16 and UTF-32 BOMs are treated as text to avoid false positives
// on wide-encoded text files.
func (d *BinaryDetector) IsBinaryContent(content []byte) bool {
	if len(content) >= 4 {
		if (content[0] == 0xFF && content[1] == 0xFE && content[2] == 0x00 && content[3] == 0x00) ||
			(content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF) {
			return false // UTF-32 BOM
		}
	}
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false // UTF-16 BOM
		}
	}

	sample := min(len(content), d.SampleSize)
	for i := range sample {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

// FileType describes a file by its extension for error messages.
func FileType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if ext != "" {
		return fmt.Sprintf("%s file", strings.TrimPrefix(ext, "."))
	}
	return "binary file"
}

// FormatSize renders a byte count in human-readable form.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(1024*1024*1024))
	}
}
