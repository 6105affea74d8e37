// Package raster encodes and decodes raster images in the lossless formats
// used for exported tiles, and writes them to files.
package raster

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnknownFormat = errors.New("raster: unknown image format")
	ErrWrite         = errors.New("raster: write failed")
)

// Format is a lossless raster image format.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	}
	return "unknown"
}

// Extension returns the usual file extension, including the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatBMP:
		return ".bmp"
	case FormatTIFF:
		return ".tif"
	}
	return ""
}

func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	}
	return "application/octet-stream"
}

// ParseFormat parses a format name such as "png", "bmp", "tif" or "tiff".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath deduces the format from the file extension.
// Paths without an extension default to PNG.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatPNG, nil
	}
	return ParseFormat(ext)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// EncodeBytes returns img encoded in the given format.
func EncodeBytes(img image.Image, f Format) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Encode(&buffer, img, f); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Decode reads an image in any of the supported formats.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, FormatUnknown, err
	}
	f, err := ParseFormat(name)
	if err != nil {
		return nil, FormatUnknown, err
	}
	return img, f, nil
}

// WriteFile encodes img in the format given by the path extension.
// The image is written to a temporary file next to path and renamed
// into place once complete.
func WriteFile(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	writer := bufio.NewWriter(out)
	err = Encode(writer, img, f)
	if err == nil {
		err = writer.Flush()
	}
	if err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
