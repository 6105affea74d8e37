package geoimage_test

import (
	"errors"
	"math"
	"testing"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/google/go-cmp/cmp"
)

const unset = geoimage.Unset

func fillConstant(t *testing.T, img *geoimage.Image, k float64) {
	t.Helper()
	for y := range img.Size() {
		for x := range img.Size() {
			if err := img.SetPixelValue(x, y, k); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestScaledDownCloneConstant(t *testing.T) {
	img := mustNew(t, 4, 3, 2, 5)
	fillConstant(t, img, 8)

	clone, err := img.ScaledDownClone(2)
	if err != nil {
		t.Fatalf("ScaledDownClone failed: %v", err)
	}
	if got, want := clone.TileID(), img.TileID(); got != want {
		t.Errorf("TileID() = %v, want = %v", got, want)
	}
	if clone.Size() != 2 {
		t.Errorf("Size() = %v, want = 2", clone.Size())
	}

	// f = 2: only pixel (0, 0) of each 2x2 block is summed, and the sum is
	// divided by 4. The last destination row and column stay unset.
	want := []float64{
		8.0 / 4, unset,
		unset, unset,
	}
	if diff := cmp.Diff(want, clone.Data()); diff != "" {
		t.Errorf("ScaledDownClone(2) data mismatch (-want+got):\n%v", diff)
	}
}

func TestScaledDownCloneBlocks(t *testing.T) {
	img := mustNew(t, 9, 0, 0, 0)
	for y := range 9 {
		for x := range 9 {
			if err := img.SetPixelValue(x, y, float64(x+10*y)); err != nil {
				t.Fatal(err)
			}
		}
	}

	clone, err := img.ScaledDownClone(3)
	if err != nil {
		t.Fatal(err)
	}

	// f = 3: each destination pixel sums the top-left 2x2 of its block over 9.
	block := func(bx, by int) float64 {
		x, y := 3*bx, 3*by
		sum := float64(x+10*y) + float64(x+1+10*y) + float64(x+10*(y+1)) + float64(x+1+10*(y+1))
		return sum / 9
	}
	want := []float64{
		block(0, 0), block(1, 0), unset,
		block(0, 1), block(1, 1), unset,
		unset, unset, unset,
	}
	if diff := cmp.Diff(want, clone.Data()); diff != "" {
		t.Errorf("ScaledDownClone(3) data mismatch (-want+got):\n%v", diff)
	}
}

func TestScaledDownCloneUnset(t *testing.T) {
	img := mustNew(t, 6, 0, 0, 0)

	half, err := img.ScaledDownClone(3)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := half.PixelValue(0, 0); got != math.MaxFloat64/4 {
		t.Errorf("PixelValue(0, 0) = %v, want = %v", got, math.MaxFloat64/4)
	}

	third, err := img.ScaledDownClone(2)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := third.PixelValue(0, 0); !math.IsInf(got, 1) {
		t.Errorf("PixelValue(0, 0) = %v, want = +Inf", got)
	}
	if got := geoimage.EncodeColor(math.Inf(1)); got != geoimage.EncodeColor(2000) {
		t.Errorf("EncodeColor(+Inf) = %v", got)
	}
}

func TestScaledDownCloneErrors(t *testing.T) {
	img := mustNew(t, 8, 0, 0, 0)
	for _, newSize := range []int{0, -2, 3, 8, 16} {
		if _, err := img.ScaledDownClone(newSize); !errors.Is(err, geoimage.ErrInvalidSize) {
			t.Errorf("ScaledDownClone(%v) error = %v, want = %v", newSize, err, geoimage.ErrInvalidSize)
		}
	}
}

func TestScaledDownCloneIndependent(t *testing.T) {
	img := mustNew(t, 4, 0, 0, 0)
	fillConstant(t, img, 4)
	clone, err := img.ScaledDownClone(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := img.SetPixelValue(0, 0, 100); err != nil {
		t.Fatal(err)
	}
	if got, _ := clone.PixelValue(0, 0); got != 1 {
		t.Errorf("clone PixelValue(0, 0) = %v, want = 1", got)
	}
}

func TestOverviews(t *testing.T) {
	img := mustNew(t, 24, 2, 1, 1)
	fillConstant(t, img, 16)

	overviews, err := img.Overviews(2)
	if err != nil {
		t.Fatal(err)
	}
	var sizes []int
	for _, o := range overviews {
		sizes = append(sizes, o.Size())
		if o.TileID() != img.TileID() {
			t.Errorf("overview %v has tile %v", o, o.TileID())
		}
	}
	if diff := cmp.Diff([]int{12, 6, 3}, sizes); diff != "" {
		t.Errorf("overview sizes mismatch (-want+got):\n%v", diff)
	}
	if got, _ := overviews[0].PixelValue(0, 0); got != 4 {
		t.Errorf("first overview PixelValue(0, 0) = %v, want = 4", got)
	}
	if got, _ := overviews[1].PixelValue(0, 0); got != 1 {
		t.Errorf("second overview PixelValue(0, 0) = %v, want = 1", got)
	}

	if _, err := img.Overviews(0); !errors.Is(err, geoimage.ErrInvalidSize) {
		t.Errorf("Overviews(0) error = %v", err)
	}
	none, err := img.Overviews(24)
	if err != nil || len(none) != 0 {
		t.Errorf("Overviews(24) = %v, %v, want none", none, err)
	}
}
