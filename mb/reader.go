// Package mb provides API for reading and writing tiles and metadata in MBTiles format.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/eak1mov/go-geoimage/tile"
	"github.com/paulmach/orb"
)

// Reader implements tile.Reader and tile.Visitor interfaces for MBTiles format.
type Reader struct {
	db       *sql.DB
	readStmt *sql.Stmt
}

// NewReader opens an MBTiles file read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	readStmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE zoom_level = ? AND tile_column = ? AND tile_row = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, readStmt: readStmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.readStmt.Close(), r.db.Close())
}

// ReadMetadata returns all rows of the metadata table.
func (r *Reader) ReadMetadata() (map[string]string, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}
	return metadata, rows.Err()
}

// ReadBound returns the "bounds" metadata value, or the whole world
// if the tileset does not declare its bounds.
func (r *Reader) ReadBound() (orb.Bound, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM metadata WHERE name = 'bounds'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return tile.ID{}.Bound(), nil
	}
	if err != nil {
		return orb.Bound{}, err
	}
	return ParseBounds(value)
}

// flipY converts between XYZ and TMS rows, the conversion is its own inverse.
func flipY(y, z uint32) uint32 {
	return (1 << z) - 1 - y
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	if !tileID.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}

	var tileData []byte
	err := r.readStmt.QueryRow(tileID.Z, tileID.X, flipY(tileID.Y, tileID.Z)).Scan(&tileData)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

// VisitTiles visits tiles ordered by zoom level, column and row.
func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	rows, err := r.db.Query(`
		SELECT zoom_level, tile_column, tile_row, tile_data FROM tiles
		ORDER BY zoom_level, tile_column, tile_row
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tileID tile.ID
		var tmsY uint32
		var tileData []byte
		if err := rows.Scan(&tileID.Z, &tileID.X, &tmsY, &tileData); err != nil {
			return err
		}
		if tileID.Z > tile.MaxZoom || uint64(tmsY) >= 1<<tileID.Z {
			return fmt.Errorf("%w: z=%d x=%d tms_y=%d", ErrInvalidTile, tileID.Z, tileID.X, tmsY)
		}
		tileID.Y = flipY(tmsY, tileID.Z)

		if err := visitor(tileID, tileData); err != nil {
			return err
		}
	}
	return rows.Err()
}
