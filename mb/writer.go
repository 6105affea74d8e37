package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-geoimage/tile"
)

var ErrInvalidTile = errors.New("libtiles: invalid tile")

// Writer implements tile.Writer interface for MBTiles format.
// All tiles are inserted within a single transaction committed by Finalize.
type Writer struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	logger *slog.Logger
	count  int
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata sets the rows of the metadata table, see ForRaster.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a MBTiles file.
// It applies given options and initializes database for writing tiles.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	stmt, err := tx.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return &Writer{db: db, tx: tx, stmt: stmt, logger: config.Logger}, nil
}

// Close releases database resources. Tiles written after the last
// Finalize are discarded.
func (w *Writer) Close() error {
	var errs []error
	if w.tx != nil {
		errs = append(errs, w.stmt.Close(), w.tx.Rollback())
		w.tx = nil
	}
	errs = append(errs, w.db.Close())
	return errors.Join(errs...)
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidTile, tileID)
	}
	if w.tx == nil {
		return errors.New("libtiles: write after finalize")
	}

	if _, err := w.stmt.Exec(tileID.Z, tileID.X, flipY(tileID.Y, tileID.Z), tileData); err != nil {
		return err
	}
	w.count++
	return nil
}

func (w *Writer) Finalize() error {
	if w.tx == nil {
		panic("libtiles: finalize called twice")
	}

	w.logger.Debug("libtiles: commit", "tiles", w.count)
	err := errors.Join(w.stmt.Close(), w.tx.Commit())
	w.tx = nil
	if err != nil {
		return err
	}

	w.logger.Debug("libtiles: creating index")
	if _, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)"); err != nil {
		return err
	}

	w.logger.Debug("libtiles: done!")
	return nil
}
