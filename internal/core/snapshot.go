package core

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// SaveSnapshot writes img as a PNG named <prefix>_<timestamp>.png in dir,
// creating dir if needed. Returns the written path.
func SaveSnapshot(dir, prefix string, img image.Image, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: cannot create directory %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s_%s.png", prefix, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := WritePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return f.Close()
}
