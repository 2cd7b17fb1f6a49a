package storage

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go-image-processing/internal/logger"
)

// Saver persists images to a storage destination.
type Saver interface {
	SaveImage(img image.Image, name string) (string, error)
}

// LocalSaver writes images as PNG files under a base directory.
type LocalSaver struct {
	directory string
}

// NewLocalSaver creates a saver rooted at the given directory. The
// directory is created on first save.
func NewLocalSaver(directory string) *LocalSaver {
	return &LocalSaver{directory: directory}
}

// SaveImage encodes the image as PNG and writes it under the base
// directory, returning the final path. Path separators in the name are
// rejected to keep writes inside the directory.
func (s *LocalSaver) SaveImage(img image.Image, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid image name: %q", name)
	}
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}

	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.directory, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	logger.WithField("path", path).Info("Image saved")
	return path, nil
}
