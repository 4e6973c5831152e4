package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fpang/polylingo/internal/ocr"
)

// MaxImageSize bounds images read from disk.
const MaxImageSize = 20 << 20

// ErrImageTooLarge is returned for files over MaxImageSize.
var ErrImageTooLarge = errors.New("image file too large")

// ReadImage checks that path is a regular file of acceptable size and loads
// it as a payload with a sniffed MIME type.
func ReadImage(path string) (ocr.Payload, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ocr.Payload{}, fmt.Errorf("image not found: %s", path)
		}
		return ocr.Payload{}, fmt.Errorf("access image: %w", err)
	}
	if !info.Mode().IsRegular() {
		return ocr.Payload{}, fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > MaxImageSize {
		return ocr.Payload{}, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrImageTooLarge, path, info.Size(), MaxImageSize)
	}
	if info.Size() == 0 {
		return ocr.Payload{}, fmt.Errorf("%w: %s", ocr.ErrEmptyPayload, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ocr.Payload{}, fmt.Errorf("read image: %w", err)
	}
	return ocr.NewPayload(data, ""), nil
}

// AbsPath returns the absolute form of path, or path itself on failure.
func AbsPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
