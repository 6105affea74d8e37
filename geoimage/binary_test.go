package geoimage_test

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/google/go-cmp/cmp"
)

func TestSaveLoad(t *testing.T) {
	for _, tc := range []struct {
		size       int
		zoom, x, y uint32
	}{
		{1, 0, 0, 0},
		{16, 4, 3, 9},
		{100, 17, 68640, 45912},
	} {
		img := mustNew(t, tc.size, tc.zoom, tc.x, tc.y)
		fillPattern(t, img)
		if tc.size > 1 {
			// Keep one pixel unset.
			if err := img.SetPixelValue(tc.size-1, 0, geoimage.Unset); err != nil {
				t.Fatal(err)
			}
		}

		path := filepath.Join(t.TempDir(), "tile.bin")
		if err := img.Save(path); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Errorf("temporary file left behind: %v", err)
		}

		loaded, err := geoimage.Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(img, loaded, allowImage); diff != "" {
			t.Errorf("Load(Save(%v)) mismatch (-want+got):\n%v", img, diff)
		}
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.bin")
	if err := mustNew(t, 32, 0, 0, 0).Save(path); err != nil {
		t.Fatal(err)
	}
	img := mustNew(t, 2, 1, 1, 1)
	if err := img.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := geoimage.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(img, loaded, allowImage) {
		t.Errorf("Load returned %v, want %v", loaded, img)
	}
}

func TestMarshalBinaryLayout(t *testing.T) {
	img := mustNew(t, 2, 1, 1, 0)
	if err := img.SetPixelValue(1, 1, 3.5); err != nil {
		t.Fatal(err)
	}
	data, err := img.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(data), 8*8+4*8; got != want {
		t.Fatalf("len(MarshalBinary()) = %v, want = %v", got, want)
	}

	u64 := func(i int) uint64 { return binary.LittleEndian.Uint64(data[8*i:]) }
	f64 := func(i int) float64 { return math.Float64frombits(u64(i)) }
	if u64(0) != 2 || u64(1) != 1 || u64(2) != 1 || u64(3) != 0 {
		t.Errorf("tile parameters = %v %v %v %v", u64(0), u64(1), u64(2), u64(3))
	}
	if f64(4) != 0.5 || f64(5) != 0 || f64(6) != 0.25 {
		t.Errorf("derived fields = %v %v %v", f64(4), f64(5), f64(6))
	}
	if u64(7) != 4 {
		t.Errorf("data length = %v, want = 4", u64(7))
	}
	if f64(8) != geoimage.Unset || f64(11) != 3.5 {
		t.Errorf("samples = %v ... %v", f64(8), f64(11))
	}
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	valid, err := mustNew(t, 2, 1, 1, 0).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	patch := func(i int, v uint64) []byte {
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint64(data[8*i:], v)
		return data
	}

	for name, data := range map[string][]byte{
		"empty":         {},
		"truncated":     valid[:len(valid)-1],
		"trailing":      append(append([]byte(nil), valid...), 0, 0, 0, 0, 0, 0, 0, 0),
		"zero size":     patch(0, 0),
		"bad length":    patch(7, 5),
		"bad offset":    patch(2, 2),
		"bad origin":    patch(4, math.Float64bits(0.25)),
		"huge size":     patch(0, 1<<40),
		"size mismatch": patch(0, 3),
	} {
		img := &geoimage.Image{}
		if err := img.UnmarshalBinary(data); !errors.Is(err, geoimage.ErrInvalidData) {
			t.Errorf("%v: UnmarshalBinary error = %v, want = %v", name, err, geoimage.ErrInvalidData)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := geoimage.Load(filepath.Join(dir, "missing.bin")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}

	path := filepath.Join(dir, "garbage.bin")
	if err := os.WriteFile(path, []byte("not a tile"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := geoimage.Load(path); !errors.Is(err, geoimage.ErrInvalidData) {
		t.Errorf("Load(garbage) error = %v, want = %v", err, geoimage.ErrInvalidData)
	}
}

func TestSaveError(t *testing.T) {
	img := mustNew(t, 2, 0, 0, 0)
	if err := img.Save(filepath.Join(t.TempDir(), "missing", "tile.bin")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Save error = %v, want = %v", err, os.ErrNotExist)
	}
}
