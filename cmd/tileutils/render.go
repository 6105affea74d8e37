package main

import (
	"context"
	"flag"
	"log"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/google/subcommands"
)

type renderCmd struct {
	inputPath  string
	outputPath string
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "render saved geoimage as a color-encoded raster" }
func (c *renderCmd) Usage() string {
	return "tileutils render -i <path> -o <path.png|path.bmp|path.tif>\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input geoimage path")
	f.StringVar(&c.outputPath, "o", "", "Output raster path, format is chosen by extension")
}

func (c *renderCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	img, err := geoimage.Load(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := img.Export(c.outputPath); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
