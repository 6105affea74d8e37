package geoimage

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/eak1mov/go-geoimage/raster"
)

// MaxEncodedValue is the largest sample magnitude the color encoding can
// represent. Larger values, including Unset, are exported as this value.
const MaxEncodedValue = 2000.0

// EncodeColor maps a sample to its false color. The truncated value v is
// split into red (low byte) and green (16 times the high byte, modulo 256).
// Blue is always zero. Negative and NaN samples encode as zero.
func EncodeColor(d float64) color.RGBA {
	var v uint32
	if d > 0 {
		v = uint32(math.Min(d, MaxEncodedValue))
	}
	return color.RGBA{
		R: uint8(v & 0xff),
		G: uint8(16 * ((v >> 8) & 0xff)),
		B: 0,
		A: 0xff,
	}
}

// DecodeColor is the inverse of EncodeColor for samples in [0, MaxEncodedValue],
// up to the truncation of the fractional part.
func DecodeColor(c color.Color) float64 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return float64(uint32(rgba.R) | uint32(rgba.G/16)<<8)
}

// ColorImage returns the false-color rendering of the samples, with pixel
// (0, 0) at the top-left corner.
func (img *Image) ColorImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.size, img.size))
	for y := range img.size {
		for x := range img.size {
			out.SetRGBA(x, y, EncodeColor(img.data[x+y*img.size]))
		}
	}
	return out
}

// Export writes the false-color rendering to path. The image format is
// chosen from the file extension, see raster.FormatFromPath.
func (img *Image) Export(path string) error {
	if err := raster.WriteFile(path, img.ColorImage()); err != nil {
		return fmt.Errorf("geoimage: export %v: %w", img.TileID(), err)
	}
	return nil
}
