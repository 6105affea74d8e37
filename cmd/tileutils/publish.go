package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/eak1mov/go-geoimage/mb"
	"github.com/eak1mov/go-geoimage/pm"
	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/eak1mov/go-geoimage/raster"
	"github.com/eak1mov/go-geoimage/tile"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type publishCmd struct {
	outputFormat string
	outputPath   string
	rasterFormat string
	compression  string
	name         string
}

func (c *publishCmd) Name() string     { return "publish" }
func (c *publishCmd) Synopsis() string { return "publish saved geoimages as color-encoded raster tiles" }
func (c *publishCmd) Usage() string {
	return "tileutils publish -o <path> [-of <format>] [-raster png|bmp|tiff] <geoimage>...\n"
}
func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, pmtiles, xyz)")
	f.StringVar(&c.rasterFormat, "raster", "png", "Tile image format (png, bmp, tiff)")
	f.StringVar(&c.compression, "compression", "gzip", "PMTiles directory compression (none, gzip, brotli, zstd)")
	f.StringVar(&c.name, "name", "", "Tileset name, defaults to the output file name")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.outputPath == "" || f.NArg() == 0 {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	rasterFormat, err := raster.ParseFormat(c.rasterFormat)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	compression, err := spec.ParseCompression(c.compression)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	images := make([]*geoimage.Image, 0, f.NArg())
	tiles := make([]tile.ID, 0, f.NArg())
	for _, path := range f.Args() {
		img, err := geoimage.Load(path)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		images = append(images, img)
		tiles = append(tiles, img.TileID())
	}

	name := c.name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(c.outputPath), filepath.Ext(c.outputPath))
	}
	metadata := fmt.Appendf(nil, `{"name":%q}`, name)
	writer, err := openWriter(c.outputFormat, c.outputPath, tilesetOptions{
		mbMetadata:  mb.ForRaster(name, rasterFormat, tiles),
		pmMetadata:  metadata,
		pmHeader:    pm.ForRaster(rasterFormat, tiles),
		compression: compression,
	})
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(len(images), progressbar.OptionShowIts(), progressbar.OptionShowCount())
	for _, img := range images {
		if err := img.WriteTile(writer, rasterFormat); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
