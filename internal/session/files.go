package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// timestampLayout names scan files by session start time
const timestampLayout = "20060102_150405"

// extensionForFormat maps a negotiated MIME type to a file extension
func extensionForFormat(format string) string {
	switch format {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "application/pdf":
		return "pdf"
	case "image/tiff":
		return "tiff"
	default:
		return "bin"
	}
}

// pageFileName builds the file name for one page. Multi-page sources carry a
// page suffix; a flatbed scan is a single file without one.
func pageFileName(timestamp string, page int, multiPage bool, format string) string {
	ext := extensionForFormat(format)
	if multiPage {
		return fmt.Sprintf("scan_%s_page%d.%s", timestamp, page, ext)
	}
	return fmt.Sprintf("scan_%s.%s", timestamp, ext)
}

// ensureOutputDir creates the output directory when it does not exist
func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	return nil
}

// writePage persists one page and returns its full path
func writePage(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("cannot write page %s: %w", path, err)
	}
	return path, nil
}
