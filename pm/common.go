// Package pm provides API for reading and writing tiles in PMTiles v3 format.
package pm

import (
	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/raster"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/paulmach/orb"
)

const e7 = 10000000.0

type HeaderMetadata struct {
	TileCompression spec.Compression
	TileType        spec.TileType
	MinZoom         uint8
	MaxZoom         uint8
	MinLonE7        int32
	MinLatE7        int32
	MaxLonE7        int32
	MaxLatE7        int32
	CenterZoom      uint8
	CenterLonE7     int32
	CenterLatE7     int32
}

// SetBound stores b as the tileset bounds and centers the tileset on it.
func (m *HeaderMetadata) SetBound(b orb.Bound) {
	m.MinLonE7 = int32(b.Min.Lon() * e7)
	m.MinLatE7 = int32(b.Min.Lat() * e7)
	m.MaxLonE7 = int32(b.Max.Lon() * e7)
	m.MaxLatE7 = int32(b.Max.Lat() * e7)
	center := b.Center()
	m.CenterLonE7 = int32(center.Lon() * e7)
	m.CenterLatE7 = int32(center.Lat() * e7)
}

// Bound returns the tileset bounds stored in the header.
func (m *HeaderMetadata) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(m.MinLonE7) / e7, float64(m.MinLatE7) / e7},
		Max: orb.Point{float64(m.MaxLonE7) / e7, float64(m.MaxLatE7) / e7},
	}
}

// ForRaster returns metadata for a tileset of uncompressed raster tiles
// covering the given tiles, with zoom range and bounds taken from them.
func ForRaster(format raster.Format, tiles []tile.ID) HeaderMetadata {
	m := HeaderMetadata{TileCompression: spec.CompressionNone}
	if format == raster.FormatPNG {
		m.TileType = spec.TileTypePng
	}
	if len(tiles) == 0 {
		return m
	}

	bound := tiles[0].Bound()
	m.MinZoom, m.MaxZoom = uint8(tiles[0].Z), uint8(tiles[0].Z)
	for _, t := range tiles[1:] {
		bound = bound.Union(t.Bound())
		m.MinZoom = min(m.MinZoom, uint8(t.Z))
		m.MaxZoom = max(m.MaxZoom, uint8(t.Z))
	}
	m.SetBound(bound)
	m.CenterZoom = m.MaxZoom
	return m
}

func (m *HeaderMetadata) CopyFromHeader(header *spec.Header) {
	m.TileCompression = header.TileCompression
	m.TileType = header.TileType
	m.MinZoom = header.MinZoom
	m.MaxZoom = header.MaxZoom
	m.MinLonE7 = header.MinLonE7
	m.MinLatE7 = header.MinLatE7
	m.MaxLonE7 = header.MaxLonE7
	m.MaxLatE7 = header.MaxLatE7
	m.CenterZoom = header.CenterZoom
	m.CenterLonE7 = header.CenterLonE7
	m.CenterLatE7 = header.CenterLatE7
}

func (m *HeaderMetadata) CopyToHeader(header *spec.Header) {
	header.TileCompression = m.TileCompression
	header.TileType = m.TileType
	header.MinZoom = m.MinZoom
	header.MaxZoom = m.MaxZoom
	header.MinLonE7 = m.MinLonE7
	header.MinLatE7 = m.MinLatE7
	header.MaxLonE7 = m.MaxLonE7
	header.MaxLatE7 = m.MaxLatE7
	header.CenterZoom = m.CenterZoom
	header.CenterLonE7 = m.CenterLonE7
	header.CenterLatE7 = m.CenterLatE7
}
