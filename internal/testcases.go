// Package internal holds helpers shared by the package tests.
package internal

import (
	"fmt"
	"iter"

	"github.com/eak1mov/go-geoimage/tile"
)

// TilesetCases yields small synthetic tilesets keyed by case name.
// Tile payloads are derived from tile coordinates, and some payloads
// repeat so that content deduplication in writers is exercised.
func TilesetCases() iter.Seq2[string, map[tile.ID][]byte] {
	return func(yield func(string, map[tile.ID][]byte) bool) {
		cases := []struct {
			name string
			gen  func() map[tile.ID][]byte
		}{
			{"empty", func() map[tile.ID][]byte { return map[tile.ID][]byte{} }},
			{"full4", func() map[tile.ID][]byte { return fullPyramid(4) }},
			{"sparse", sparse},
			{"repeated", repeated},
		}
		for _, c := range cases {
			if !yield(c.name, c.gen()) {
				return
			}
		}
	}
}

func fullPyramid(maxZoom uint32) map[tile.ID][]byte {
	tiles := make(map[tile.ID][]byte)
	for z := range maxZoom + 1 {
		for x := range uint32(1) << z {
			for y := range uint32(1) << z {
				id := tile.ID{X: x, Y: y, Z: z}
				tiles[id] = fmt.Appendf(nil, "tile-%v-%v-%v", z, x, y)
			}
		}
	}
	return tiles
}

func sparse() map[tile.ID][]byte {
	tiles := make(map[tile.ID][]byte)
	for z := uint32(0); z < 20; z += 3 {
		n := uint32(1) << z
		for _, id := range []tile.ID{{X: 0, Y: 0, Z: z}, {X: n - 1, Y: n - 1, Z: z}, {X: n / 2, Y: n / 3, Z: z}} {
			tiles[id] = fmt.Appendf(nil, "sparse-%v-%v-%v", id.Z, id.X, id.Y)
		}
	}
	return tiles
}

func repeated() map[tile.ID][]byte {
	tiles := make(map[tile.ID][]byte)
	for x := range uint32(64) {
		for y := range uint32(64) {
			tiles[tile.ID{X: x, Y: y, Z: 6}] = fmt.Appendf(nil, "ocean-%v", (x+y)%3)
		}
	}
	return tiles
}
