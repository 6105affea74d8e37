package raster_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-geoimage/raster"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	for _, tc := range []struct {
		path string
		want raster.Format
	}{
		{"tile.png", raster.FormatPNG},
		{"tile.PNG", raster.FormatPNG},
		{"dir/tile.bmp", raster.FormatBMP},
		{"tile.tif", raster.FormatTIFF},
		{"tile.tiff", raster.FormatTIFF},
		{"tile", raster.FormatPNG},
	} {
		got, err := raster.FormatFromPath(tc.path)
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.want, got, tc.path)
	}

	_, err := raster.FormatFromPath("tile.jpg")
	require.True(t, errors.Is(err, raster.ErrUnknownFormat), "%v", err)
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	for y := range 5 {
		for x := range 5 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 16), B: 0, A: 0xff})
		}
	}
	return img
}

func requireSamePixels(t *testing.T, want image.Image, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds(), got.Bounds())
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			wr, wg, wb, wa := want.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga}, "pixel (%d, %d)", x, y)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []raster.Format{raster.FormatPNG, raster.FormatBMP, raster.FormatTIFF} {
		t.Run(f.String(), func(t *testing.T) {
			img := testImage()
			data, err := raster.EncodeBytes(img, f)
			require.NoError(t, err)

			decoded, format, err := raster.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, f, format)
			requireSamePixels(t, img, decoded)
		})
	}
}

func TestEncodeUnknown(t *testing.T) {
	_, err := raster.EncodeBytes(testImage(), raster.FormatUnknown)
	require.True(t, errors.Is(err, raster.ErrUnknownFormat), "%v", err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.bmp")
	img := testImage()
	require.NoError(t, raster.WriteFile(path, img))

	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file left behind: %v", err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	decoded, format, err := raster.Decode(file)
	require.NoError(t, err)
	require.Equal(t, raster.FormatBMP, format)
	requireSamePixels(t, img, decoded)
}

func TestWriteFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tile.png")
	err := raster.WriteFile(path, testImage())
	require.True(t, errors.Is(err, raster.ErrWrite), "%v", err)
	require.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}
