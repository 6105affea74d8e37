package spec

import (
	"fmt"
	"math/bits"

	"github.com/eak1mov/go-geoimage/tile"
	"github.com/google/hilbert"
)

// EncodeTileID returns the PMTiles v3 tile code: the number of tiles on
// all lower zoom levels plus the Hilbert curve position within the level.
func EncodeTileID(tileID tile.ID) uint64 {
	if !tileID.Valid() {
		panic(fmt.Sprintf("libtiles: invalid tile %v", tileID))
	}
	h, _ := hilbert.NewHilbert(1 << tileID.Z)
	tileCode, _ := h.MapInverse(int(tileID.X), int(tileID.Y))

	return uint64(tileCode) + tilesBelow(tileID.Z)
}

func DecodeTileID(tileCode uint64) tile.ID {
	z := uint32(bits.Len64(3*tileCode+1)-1) / 2

	h, _ := hilbert.NewHilbert(1 << z)
	x, y, _ := h.Map(int(tileCode - tilesBelow(z)))

	return tile.ID{X: uint32(x), Y: uint32(y), Z: z}
}

// tilesBelow is the number of tiles on zoom levels 0..z-1.
func tilesBelow(z uint32) uint64 {
	return (1<<(z*2) - 1) / 3
}
