package pm

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/tile"
)

type Location = tile.Location

// FileAccessFunc reads length bytes at offset from the underlying tileset.
type FileAccessFunc = func(offset, length uint64) ([]byte, error)

// Reader implements tile.Reader, tile.Visitor, tile.LocationReader and
// tile.LocationVisitor for PMTiles format. Decoded directories are cached.
type Reader struct {
	fileAccess FileAccessFunc
	fileCloser func() error
	header     *spec.Header

	mu          sync.Mutex
	directories map[uint64][]spec.Entry // offset -> entries
}

// NewFileReader opens a PMTiles file. The returned Reader must be closed after use.
func NewFileReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	fileAccess := func(offset uint64, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		if _, err := file.ReadAt(buffer, int64(offset)); err != nil {
			return nil, err
		}
		return buffer, nil
	}
	r, err := NewReader(fileAccess)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.fileCloser = file.Close
	return r, nil
}

// NewReader creates a Reader on top of an arbitrary byte range accessor,
// such as an HTTP range request client.
func NewReader(fileAccess FileAccessFunc) (*Reader, error) {
	headerData, err := fileAccess(0, spec.HeaderLength)
	if err != nil {
		return nil, err
	}
	header, err := spec.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}
	return &Reader{
		fileAccess:  fileAccess,
		fileCloser:  func() error { return nil },
		header:      header,
		directories: make(map[uint64][]spec.Entry),
	}, nil
}

func (r *Reader) Close() error {
	return r.fileCloser()
}

func (r *Reader) HeaderMetadata() HeaderMetadata {
	result := HeaderMetadata{}
	result.CopyFromHeader(r.header)
	return result
}

// ReadMetadata returns the decompressed JSON metadata, or nil if there is none.
func (r *Reader) ReadMetadata() ([]byte, error) {
	if r.header.MetadataLength == 0 {
		return nil, nil
	}
	data, err := r.fileAccess(r.header.MetadataOffset, r.header.MetadataLength)
	if err != nil {
		return nil, err
	}
	return spec.Decompress(data, r.header.InternalCompression)
}

func (r *Reader) readDirectory(dirOffset, dirLength uint64) ([]spec.Entry, error) {
	r.mu.Lock()
	entries, cached := r.directories[dirOffset]
	r.mu.Unlock()
	if cached {
		return entries, nil
	}

	dirCompressed, err := r.fileAccess(dirOffset, dirLength)
	if err != nil {
		return nil, err
	}
	dirData, err := spec.Decompress(dirCompressed, r.header.InternalCompression)
	if err != nil {
		return nil, err
	}
	entries, err = spec.DeserializeDirectory(dirData)
	if err != nil {
		return nil, fmt.Errorf("directory at %d: %w", dirOffset, err)
	}

	r.mu.Lock()
	r.directories[dirOffset] = entries
	r.mu.Unlock()
	return entries, nil
}

func (r *Reader) ReadLocation(tileID tile.ID) (Location, error) {
	if !tileID.Valid() {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}
	tileCode := spec.EncodeTileID(tileID)
	dirOffset := r.header.RootOffset
	dirLength := r.header.RootLength
	for {
		dirEntries, err := r.readDirectory(dirOffset, dirLength)
		if err != nil {
			return Location{}, err
		}
		entry, found := spec.FindEntry(dirEntries, tileCode)
		if !found {
			return Location{}, nil
		}
		if entry.RunLength > 0 {
			return Location{
				Offset: r.header.TileDataOffset + entry.Offset,
				Length: uint64(entry.Length),
			}, nil
		}
		dirOffset = r.header.LeafDirectoryOffset + entry.Offset
		dirLength = uint64(entry.Length)
	}
}

// ReadTile returns the tile data, or an empty slice if the tile does not exist.
func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	location, err := r.ReadLocation(tileID)
	if err != nil {
		return nil, err
	}
	if location.Length == 0 {
		return make([]byte, 0), nil
	}
	return r.fileAccess(location.Offset, location.Length)
}

func (r *Reader) VisitLocations(visitor func(tile.ID, Location) error) error {
	var traverse func(uint64, uint64) error
	traverse = func(dirOffset, dirLength uint64) error {
		dirEntries, err := r.readDirectory(dirOffset, dirLength)
		if err != nil {
			return err
		}
		for _, entry := range dirEntries {
			if entry.RunLength == 0 {
				if err := traverse(r.header.LeafDirectoryOffset+entry.Offset, uint64(entry.Length)); err != nil {
					return err
				}
				continue
			}
			location := Location{
				Offset: r.header.TileDataOffset + entry.Offset,
				Length: uint64(entry.Length),
			}
			for i := range entry.RunLength {
				if err := visitor(spec.DecodeTileID(entry.TileCode+uint64(i)), location); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return traverse(r.header.RootOffset, r.header.RootLength)
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return r.VisitLocations(func(tileID tile.ID, location Location) error {
		tileData, err := r.fileAccess(location.Offset, location.Length)
		if err != nil {
			return err
		}
		return visitor(tileID, tileData)
	})
}

// Tiles iterates over all tiles; it panics on read errors.
func (r *Reader) Tiles() iter.Seq2[tile.ID, []byte] {
	return tile.IterTiles(r)
}

// TileLocations iterates over all tile locations; it panics on read errors.
func (r *Reader) TileLocations() iter.Seq2[tile.ID, Location] {
	return tile.IterLocations(r)
}
