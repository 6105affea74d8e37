package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/eak1mov/go-geoimage/mb"
	"github.com/eak1mov/go-geoimage/pm"
	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	inputFormat  string
	inputPath    string
	outputFormat string
	outputPath   string
	compression  string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "convert between tile storage formats" }
func (c *convertCmd) Usage() string {
	return "tileutils convert -i <path> -o <path> [-if <format> | -of <format>] [-compression <name>]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (mbtiles, pmtiles, xyz)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, pmtiles, xyz)")
	f.StringVar(&c.compression, "compression", "gzip", "PMTiles directory compression (none, gzip, brotli, zstd)")
}

func convertMetadata(metadata map[string]string) (pm.HeaderMetadata, error) {
	header := pm.HeaderMetadata{}

	switch metadata["format"] {
	case "pbf":
		header.TileType = spec.TileTypeMvt
		header.TileCompression = spec.CompressionGzip
	case "png":
		header.TileType = spec.TileTypePng
		header.TileCompression = spec.CompressionNone
	case "jpg":
		header.TileType = spec.TileTypeJpeg
		header.TileCompression = spec.CompressionNone
	case "webp":
		header.TileType = spec.TileTypeWebp
		header.TileCompression = spec.CompressionNone
	case "avif":
		header.TileType = spec.TileTypeAvif
		header.TileCompression = spec.CompressionNone
	}

	bound := tile.ID{}.Bound()
	if boundsValue, found := metadata["bounds"]; found {
		var err error
		if bound, err = mb.ParseBounds(boundsValue); err != nil {
			return pm.HeaderMetadata{}, err
		}
	}
	header.SetBound(bound)

	if centerValue, found := metadata["center"]; found {
		var centerLat, centerLon float64
		if _, err := fmt.Sscanf(centerValue, "%f,%f,%d", &centerLon, &centerLat, &header.CenterZoom); err != nil {
			return pm.HeaderMetadata{}, err
		}
		header.CenterLonE7 = int32(centerLon * 1e7)
		header.CenterLatE7 = int32(centerLat * 1e7)
	}

	for key, dst := range map[string]*uint8{"minzoom": &header.MinZoom, "maxzoom": &header.MaxZoom} {
		value, found := metadata[key]
		if !found {
			continue
		}
		zoom, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return pm.HeaderMetadata{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = uint8(zoom)
	}

	return header, nil
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	compression, err := spec.ParseCompression(c.compression)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	reader, err := openReader(c.inputFormat, c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	opts := tilesetOptions{compression: compression}
	if mbReader, ok := reader.(*mb.Reader); ok {
		metadata, err := mbReader.ReadMetadata()
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		opts.mbMetadata = metadata
		if opts.pmHeader, err = convertMetadata(metadata); err != nil {
			log.Println("failed to convert metadata:", err)
			return subcommands.ExitFailure
		}
		if jsonValue, found := metadata["json"]; found {
			opts.pmMetadata = []byte(jsonValue)
		}
	}
	if pmReader, ok := reader.(*pm.Reader); ok {
		opts.pmHeader = pmReader.HeaderMetadata()
		if opts.pmMetadata, err = pmReader.ReadMetadata(); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	writer, err := openWriter(c.outputFormat, c.outputPath, opts)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(tileID tile.ID, tileData []byte) error {
		err := writer.WriteTile(tileID, tileData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
