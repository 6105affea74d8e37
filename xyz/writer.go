package xyz

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-geoimage/tile"
)

// Writer implements tile.Writer interface for tiles in XYZ format.
type Writer struct {
	filePattern string
	logger      *slog.Logger
	count       int
}

type WriterOption func(*Writer)

func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/tiles/{z}/{x}/{y}.png").
func NewWriter(filePattern string, opts ...WriterOption) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	w := &Writer{filePattern: filePattern, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}

	filePath := formatPattern(w.filePattern, tileID)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, tileData, 0644); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *Writer) Finalize() error {
	w.logger.Debug("libtiles: done!", "tiles", w.count)
	return nil
}
