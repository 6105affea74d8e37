package geoimage

import (
	"bytes"
	"fmt"

	"github.com/eak1mov/go-geoimage/raster"
	"github.com/eak1mov/go-geoimage/tile"
)

// WriteTile stores the false-color rendering of img into a tileset,
// under the image's own tile coordinates.
func (img *Image) WriteTile(w tile.Writer, f raster.Format) error {
	data, err := raster.EncodeBytes(img.ColorImage(), f)
	if err != nil {
		return fmt.Errorf("geoimage: encode %v: %w", img.TileID(), err)
	}
	return w.WriteTile(img.TileID(), data)
}

// ReadTile decodes a tile written by WriteTile back into an Image.
// Samples come back truncated to integers and capped at MaxEncodedValue.
func ReadTile(r tile.Reader, id tile.ID) (*Image, error) {
	data, err := r.ReadTile(id)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrTileNotFound, id)
	}

	decoded, _, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: tile %v: %w", ErrInvalidData, id, err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != bounds.Dy() {
		return nil, fmt.Errorf("%w: tile %v is %dx%d", ErrInvalidData, id, bounds.Dx(), bounds.Dy())
	}

	img, err := NewForTile(bounds.Dx(), id)
	if err != nil {
		return nil, err
	}
	for y := range img.size {
		for x := range img.size {
			img.data[x+y*img.size] = DecodeColor(decoded.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return img, nil
}
