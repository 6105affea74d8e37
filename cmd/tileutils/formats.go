package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-geoimage/mb"
	"github.com/eak1mov/go-geoimage/pm"
	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/eak1mov/go-geoimage/xyz"
)

func deduceFormat(format, filePath string) string {
	if format == "" && strings.HasSuffix(filePath, ".mbtiles") {
		return "mbtiles"
	}
	if format == "" && strings.HasSuffix(filePath, ".pmtiles") {
		return "pmtiles"
	}
	return format
}

type tilesetReader interface {
	tile.Reader
	tile.Visitor
}

func openReader(format, filePath string) (tilesetReader, error) {
	switch deduceFormat(format, filePath) {
	case "mbtiles":
		return mb.NewReader(filePath)
	case "pmtiles":
		return pm.NewFileReader(filePath)
	case "xyz", "":
		return xyz.NewReader(filePath)
	}
	return nil, fmt.Errorf("invalid input format: %q", format)
}

type tilesetOptions struct {
	mbMetadata  map[string]string
	pmMetadata  []byte
	pmHeader    pm.HeaderMetadata
	compression spec.Compression
}

func openWriter(format, filePath string, opts tilesetOptions) (tile.Writer, error) {
	switch deduceFormat(format, filePath) {
	case "mbtiles":
		return mb.NewWriter(filePath,
			mb.WithMetadata(opts.mbMetadata),
			mb.WithLogger(slog.Default()),
		)
	case "pmtiles":
		return pm.NewWriter(filePath,
			pm.WithMetadata(opts.pmMetadata),
			pm.WithHeaderMetadata(opts.pmHeader),
			pm.WithInternalCompression(opts.compression),
			pm.WithLogger(slog.Default()),
		)
	case "xyz", "":
		return xyz.NewWriter(filePath, xyz.WithLogger(slog.Default()))
	}
	return nil, fmt.Errorf("invalid output format: %q", format)
}
