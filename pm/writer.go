package pm

import (
	"bufio"
	"cmp"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/tile"
)

var ErrInvalidTile = errors.New("libtiles: invalid tile")

// Writer implements tile.Writer interface for PMTiles format.
// Tiles may be written in any order; identical tile contents are stored once.
type Writer struct {
	logger *slog.Logger
	file   *os.File
	header spec.Header

	tileWriter *bufio.Writer
	tileOffset uint64

	entries   []spec.Entry
	locations map[[16]byte]uint32 // hash -> entry index
}

type writerConfig struct {
	Metadata            []byte
	HeaderMetadata      HeaderMetadata
	InternalCompression spec.Compression
	Logger              *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata sets the JSON metadata stored in the file.
func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithHeaderMetadata(headerMetadata HeaderMetadata) WriterOption {
	return func(c *writerConfig) { c.HeaderMetadata = headerMetadata }
}

// WithInternalCompression sets the compression of directories and metadata.
// The default is gzip.
func WithInternalCompression(compression spec.Compression) WriterOption {
	return func(c *writerConfig) { c.InternalCompression = compression }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for the given file path.
// The returned Writer must be finalized and closed after use.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		InternalCompression: spec.CompressionGzip,
		Logger:              slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	metadata, err := spec.Compress(config.Metadata, config.InternalCompression)
	if err != nil {
		return nil, err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	header := spec.Header{}
	offset := uint64(spec.HeaderRootDirMaxLength)

	if _, err = file.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, err
	}

	if config.Metadata != nil {
		if _, err = file.Write(metadata); err != nil {
			return nil, err
		}
		header.MetadataOffset = offset
		header.MetadataLength = uint64(len(metadata))
		offset += header.MetadataLength
	}

	header.HeaderMagic = spec.HeaderMagicV3
	header.Clustered = true
	header.InternalCompression = config.InternalCompression
	header.TileDataOffset = offset
	config.HeaderMetadata.CopyToHeader(&header)

	return &Writer{
		logger:     config.Logger,
		file:       file,
		header:     header,
		tileWriter: bufio.NewWriter(file),
		locations:  make(map[[16]byte]uint32),
	}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}
	if len(tileData) == 0 {
		return nil
	}

	w.header.AddressedTilesCount++

	digest := md5.Sum(tileData)
	if entryIdx, exists := w.locations[digest]; exists {
		w.entries = append(w.entries, spec.Entry{
			TileCode:  spec.EncodeTileID(tileID),
			Offset:    w.entries[entryIdx].Offset,
			Length:    w.entries[entryIdx].Length,
			RunLength: 1,
		})
		return nil
	}

	entry := spec.Entry{
		TileCode:  spec.EncodeTileID(tileID),
		Offset:    w.tileOffset,
		Length:    uint32(len(tileData)),
		RunLength: 1,
	}

	if _, err := w.tileWriter.Write(tileData); err != nil {
		return err
	}

	w.tileOffset += uint64(len(tileData))
	w.header.TileContentsCount++

	w.locations[digest] = uint32(len(w.entries))
	w.entries = append(w.entries, entry)

	return nil
}

func (w *Writer) Finalize() error {
	if w.tileWriter == nil {
		panic("libtiles: finalize called twice")
	}

	w.logger.Debug("libtiles: flush")
	if err := w.tileWriter.Flush(); err != nil {
		return err
	}
	w.header.TileDataLength = w.tileOffset
	w.tileWriter = nil

	w.logger.Debug("libtiles: sort")
	slices.SortFunc(w.entries, func(a, b spec.Entry) int {
		return cmp.Compare(a.TileCode, b.TileCode)
	})

	w.logger.Debug("libtiles: compact")
	w.entries = spec.CompactEntries(w.entries)
	w.header.TileEntriesCount = uint64(len(w.entries))

	w.logger.Debug("libtiles: serialize", "entries", len(w.entries), "compression", w.header.InternalCompression)
	rootBytes, leavesBytes, err := spec.SerializeAll(w.entries, w.header.InternalCompression)
	if err != nil {
		return err
	}

	w.logger.Debug("libtiles: write leaves")
	leavesOffset, err := w.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.file.Write(leavesBytes); err != nil {
		return err
	}
	w.header.LeafDirectoryOffset = uint64(leavesOffset)
	w.header.LeafDirectoryLength = uint64(len(leavesBytes))

	w.logger.Debug("libtiles: write root")
	if _, err := w.file.WriteAt(rootBytes, spec.RootDirOffset); err != nil {
		return err
	}
	w.header.RootOffset = spec.RootDirOffset
	w.header.RootLength = uint64(len(rootBytes))

	w.logger.Debug("libtiles: write header")
	if _, err := w.file.WriteAt(spec.SerializeHeader(&w.header), 0); err != nil {
		return err
	}

	w.logger.Debug("libtiles: close")
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil

	w.logger.Debug("libtiles: done!", "tiles", w.header.AddressedTilesCount, "contents", w.header.TileContentsCount)
	return nil
}

func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
