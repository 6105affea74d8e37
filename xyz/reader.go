package xyz

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/eak1mov/go-geoimage/tile"
)

// Reader implements tile.Reader interface for tiles in XYZ format.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/tiles/{z}/{x}/{y}.png").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	pathRegexp, err := patternRegexp(filepath.Clean(filePattern))
	if err != nil {
		return nil, err
	}

	// The root is the deepest directory shared by all tile paths.
	path0 := formatPattern(filePattern, tile.ID{X: 0, Y: 0, Z: 0})
	path1 := formatPattern(filePattern, tile.ID{X: 1, Y: 1, Z: 1})
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}

	return &Reader{filePattern: filePattern, rootDir: path0, pathRegexp: pathRegexp}, nil
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	if !tileID.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}
	tileData, err := os.ReadFile(formatPattern(r.filePattern, tileID))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filepath.Clean(filePath))
		if matches == nil {
			return nil // unrelated file
		}

		var coords [3]uint32
		for i, name := range []string{"x", "y", "z"} {
			value, err := strconv.ParseUint(matches[r.pathRegexp.SubexpIndex(name)], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: %v: %w", ErrInvalidTile, filePath, err)
			}
			coords[i] = uint32(value)
		}
		tileID := tile.ID{X: coords[0], Y: coords[1], Z: coords[2]}
		if !tileID.Valid() {
			return fmt.Errorf("%w: %v: %v", ErrInvalidTile, filePath, tileID)
		}

		tileData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		return visitor(tileID, tileData)
	})
}
