package geoimage_test

import (
	"errors"
	"math"
	"testing"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/google/go-cmp/cmp"
)

var allowImage = cmp.AllowUnexported(geoimage.Image{})

func mustNew(t *testing.T, size int, zoom, x, y uint32) *geoimage.Image {
	t.Helper()
	img, err := geoimage.New(size, zoom, x, y)
	if err != nil {
		t.Fatalf("New(%v, %v, %v, %v) failed: %v", size, zoom, x, y, err)
	}
	return img
}

func fillPattern(t *testing.T, img *geoimage.Image) {
	t.Helper()
	for y := range img.Size() {
		for x := range img.Size() {
			if err := img.SetPixelValue(x, y, float64(x*7+y*13)+0.25); err != nil {
				t.Fatalf("SetPixelValue(%v, %v) failed: %v", x, y, err)
			}
		}
	}
}

func TestNew(t *testing.T) {
	img := mustNew(t, 8, 3, 5, 2)

	if got, want := img.TileID(), (tile.ID{X: 5, Y: 2, Z: 3}); got != want {
		t.Errorf("TileID() = %v, want = %v", got, want)
	}
	x0, y0 := img.Origin()
	if x0 != 5.0/8 || y0 != 2.0/8 {
		t.Errorf("Origin() = (%v, %v), want = (%v, %v)", x0, y0, 5.0/8, 2.0/8)
	}
	if got, want := img.PixelScale(), 1.0/8/8; got != want {
		t.Errorf("PixelScale() = %v, want = %v", got, want)
	}

	data := img.Data()
	if len(data) != 64 {
		t.Fatalf("len(Data()) = %v, want = 64", len(data))
	}
	for i, v := range data {
		if v != math.MaxFloat64 {
			t.Fatalf("Data()[%v] = %v, want Unset", i, v)
		}
	}
}

func TestNewErrors(t *testing.T) {
	for _, tc := range []struct {
		size       int
		zoom, x, y uint32
		want       error
	}{
		{0, 0, 0, 0, geoimage.ErrInvalidSize},
		{-4, 0, 0, 0, geoimage.ErrInvalidSize},
		{4, 0, 1, 0, geoimage.ErrInvalidTileCoordinates},
		{4, 2, 0, 4, geoimage.ErrInvalidTileCoordinates},
		{4, 32, 0, 0, geoimage.ErrInvalidTileCoordinates},
	} {
		_, err := geoimage.New(tc.size, tc.zoom, tc.x, tc.y)
		if !errors.Is(err, tc.want) {
			t.Errorf("New(%v, %v, %v, %v) error = %v, want = %v", tc.size, tc.zoom, tc.x, tc.y, err, tc.want)
		}
	}
}

func TestSetPixelValue(t *testing.T) {
	img := mustNew(t, 4, 1, 1, 0)
	if err := img.SetPixelValue(3, 2, 42.5); err != nil {
		t.Fatalf("SetPixelValue failed: %v", err)
	}
	if got := img.Data()[3+2*4]; got != 42.5 {
		t.Errorf("Data()[11] = %v, want = 42.5", got)
	}
	got, err := img.PixelValue(3, 2)
	if err != nil || got != 42.5 {
		t.Errorf("PixelValue(3, 2) = %v, %v, want = 42.5", got, err)
	}

	// Data returns a copy.
	img.Data()[0] = 1
	if got, _ := img.PixelValue(0, 0); got != geoimage.Unset {
		t.Errorf("PixelValue(0, 0) = %v after modifying Data() copy", got)
	}
}

func TestSetPixelValueOutOfRange(t *testing.T) {
	for _, size := range []int{1, 2, 3, 16, 256} {
		img := mustNew(t, size, 0, 0, 0)
		for _, p := range [][2]int{{size, 0}, {0, size}, {size, size}, {-1, 0}, {0, -1}} {
			if err := img.SetPixelValue(p[0], p[1], 1); !errors.Is(err, geoimage.ErrPixelOutOfRange) {
				t.Errorf("size %v: SetPixelValue(%v, %v) error = %v, want = %v", size, p[0], p[1], err, geoimage.ErrPixelOutOfRange)
			}
			if _, err := img.PixelValue(p[0], p[1]); !errors.Is(err, geoimage.ErrPixelOutOfRange) {
				t.Errorf("size %v: PixelValue(%v, %v) error = %v", size, p[0], p[1], err)
			}
		}
		for i, v := range img.Data() {
			if v != geoimage.Unset {
				t.Fatalf("size %v: out-of-range write changed pixel %v to %v", size, i, v)
			}
		}
	}
}
