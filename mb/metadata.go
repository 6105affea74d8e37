package mb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-geoimage/raster"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/paulmach/orb"
)

// ForRaster returns the metadata rows of a raster tileset covering
// the given tiles: name, format, type, zoom range, bounds and center.
func ForRaster(name string, format raster.Format, tiles []tile.ID) map[string]string {
	metadata := map[string]string{
		"name":   name,
		"format": strings.TrimPrefix(format.Extension(), "."),
		"type":   "overlay",
	}
	if len(tiles) == 0 {
		return metadata
	}

	bound := tiles[0].Bound()
	minZoom, maxZoom := tiles[0].Z, tiles[0].Z
	for _, t := range tiles[1:] {
		bound = bound.Union(t.Bound())
		minZoom = min(minZoom, t.Z)
		maxZoom = max(maxZoom, t.Z)
	}
	center := bound.Center()

	metadata["minzoom"] = strconv.FormatUint(uint64(minZoom), 10)
	metadata["maxzoom"] = strconv.FormatUint(uint64(maxZoom), 10)
	metadata["bounds"] = formatFloats(bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
	metadata["center"] = formatFloats(center.Lon(), center.Lat(), float64(maxZoom))
	return metadata
}

// ParseBounds parses the "bounds" metadata value: left,bottom,right,top.
func ParseBounds(value string) (orb.Bound, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("libtiles: invalid bounds %q", value)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("libtiles: invalid bounds %q: %w", value, err)
		}
		v[i] = f
	}
	return orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}, nil
}

func formatFloats(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
