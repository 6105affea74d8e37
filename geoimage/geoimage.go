// Package geoimage provides a square grid of scalar samples placed on a
// Web Mercator tile. Pixels map to geographic coordinates, values are
// exported as false-color raster images, and grids can be persisted and
// downsampled.
//
// An Image is not safe for concurrent mutation. Callers that populate
// pixels from several goroutines must partition the pixel range and
// synchronize themselves.
package geoimage

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/eak1mov/go-geoimage/tile"
	"github.com/paulmach/orb"
)

// Unset is the value of pixels that have not been written yet.
const Unset = math.MaxFloat64

var (
	ErrInvalidSize            = errors.New("geoimage: invalid size")
	ErrInvalidTileCoordinates = errors.New("geoimage: invalid tile coordinates")
	ErrPixelOutOfRange        = errors.New("geoimage: pixel out of range")
	ErrInvalidData            = errors.New("geoimage: invalid data")
	ErrTileNotFound           = errors.New("geoimage: tile not found")
)

// Image is a size×size grid of float64 samples covering the Web Mercator
// tile (zoom, xOffset, yOffset). Samples are stored row-major.
type Image struct {
	size    int
	zoom    uint32
	xOffset uint32
	yOffset uint32

	// Derived from the fields above, in Mercator unit square coordinates.
	x0         float64
	y0         float64
	pixelScale float64

	data []float64
}

// New returns an Image with every pixel set to Unset.
func New(size int, zoom, xOffset, yOffset uint32) (*Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	id := tile.ID{X: xOffset, Y: yOffset, Z: zoom}
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTileCoordinates, id)
	}
	if size > math.MaxInt/size {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	img := &Image{
		size:    size,
		zoom:    zoom,
		xOffset: xOffset,
		yOffset: yOffset,
		data:    make([]float64, size*size),
	}
	img.x0, img.y0, img.pixelScale = img.derived()
	for i := range img.data {
		img.data[i] = Unset
	}
	return img, nil
}

// NewForTile is New for a tile.ID.
func NewForTile(size int, id tile.ID) (*Image, error) {
	return New(size, id.Z, id.X, id.Y)
}

func (img *Image) derived() (x0, y0, pixelScale float64) {
	scale := math.Pow(2, float64(img.zoom))
	x0 = float64(img.xOffset) / scale
	y0 = float64(img.yOffset) / scale
	pixelScale = 1.0 / float64(img.size) / scale
	return x0, y0, pixelScale
}

func (img *Image) Size() int       { return img.size }
func (img *Image) Zoom() uint32    { return img.zoom }
func (img *Image) XOffset() uint32 { return img.xOffset }
func (img *Image) YOffset() uint32 { return img.yOffset }

// Origin returns the top-left corner of the tile in the Mercator unit square.
func (img *Image) Origin() (x0, y0 float64) { return img.x0, img.y0 }

// PixelScale returns the width of one pixel in the Mercator unit square.
func (img *Image) PixelScale() float64 { return img.pixelScale }

func (img *Image) TileID() tile.ID {
	return tile.ID{X: img.xOffset, Y: img.yOffset, Z: img.zoom}
}

// Bound returns the geographic footprint of the image.
func (img *Image) Bound() orb.Bound {
	return img.TileID().Bound()
}

// Data returns a copy of the samples in row-major order.
func (img *Image) Data() []float64 {
	return slices.Clone(img.data)
}

func (img *Image) checkPixel(x, y int) error {
	if x < 0 || x >= img.size || y < 0 || y >= img.size {
		return fmt.Errorf("%w: (%d, %d) in image of size %d", ErrPixelOutOfRange, x, y, img.size)
	}
	return nil
}

// PixelValue returns the sample at (x, y).
func (img *Image) PixelValue(x, y int) (float64, error) {
	if err := img.checkPixel(x, y); err != nil {
		return 0, err
	}
	return img.data[x+y*img.size], nil
}

// SetPixelValue stores value at (x, y). The value itself is not validated.
func (img *Image) SetPixelValue(x, y int, value float64) error {
	if err := img.checkPixel(x, y); err != nil {
		return err
	}
	img.data[x+y*img.size] = value
	return nil
}

func (img *Image) String() string {
	return fmt.Sprintf("geoimage %v size %d", img.TileID(), img.size)
}
