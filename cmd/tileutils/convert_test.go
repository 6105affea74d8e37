package main

import (
	"testing"

	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/stretchr/testify/require"
)

func TestConvertMetadata(t *testing.T) {
	header, err := convertMetadata(map[string]string{
		"format":  "png",
		"bounds":  "-10.5,20,30,40.25",
		"center":  "10,30,7",
		"minzoom": "2",
		"maxzoom": "9",
	})
	require.NoError(t, err)
	require.Equal(t, spec.TileTypePng, header.TileType)
	require.Equal(t, spec.CompressionNone, header.TileCompression)
	require.Equal(t, int32(-105000000), header.MinLonE7)
	require.Equal(t, int32(402500000), header.MaxLatE7)
	require.Equal(t, int32(100000000), header.CenterLonE7)
	require.Equal(t, uint8(7), header.CenterZoom)
	require.Equal(t, uint8(2), header.MinZoom)
	require.Equal(t, uint8(9), header.MaxZoom)

	world, err := convertMetadata(map[string]string{})
	require.NoError(t, err)
	require.Equal(t, int32(-1800000000), world.MinLonE7)
	require.Equal(t, int32(1800000000), world.MaxLonE7)

	for _, bad := range []map[string]string{
		{"bounds": "1,2"},
		{"minzoom": "x"},
		{"maxzoom": "300"},
	} {
		_, err := convertMetadata(bad)
		require.Error(t, err, "%v", bad)
	}
}

func TestDeduceFormat(t *testing.T) {
	require.Equal(t, "mbtiles", deduceFormat("", "a.mbtiles"))
	require.Equal(t, "pmtiles", deduceFormat("", "a.pmtiles"))
	require.Equal(t, "", deduceFormat("", "tiles/{z}/{x}/{y}.png"))
	require.Equal(t, "xyz", deduceFormat("xyz", "a.pmtiles"))
}

func TestOverviewPath(t *testing.T) {
	require.Equal(t, "out/dem.128.bin", overviewPath("out/dem.bin", 128))
	require.Equal(t, "dem.64", overviewPath("dem", 64))
}
