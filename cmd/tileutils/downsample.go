package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/google/subcommands"
)

type downsampleCmd struct {
	inputPath  string
	outputPath string
	size       int
	overviews  bool
}

func (c *downsampleCmd) Name() string     { return "downsample" }
func (c *downsampleCmd) Synopsis() string { return "box-filter saved geoimage to a smaller size" }
func (c *downsampleCmd) Usage() string {
	return "tileutils downsample -i <path> -o <path> -size <n> [-overviews]\n"
}
func (c *downsampleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input geoimage path")
	f.StringVar(&c.outputPath, "o", "", "Output geoimage path")
	f.IntVar(&c.size, "size", 0, "Output size; with -overviews, the smallest overview size")
	f.BoolVar(&c.overviews, "overviews", false, "Write the chain of halved overviews as <output>.<size><ext>")
}

func overviewPath(path string, size int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), size, ext)
}

func (c *downsampleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPath == "" || c.size <= 0 {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	img, err := geoimage.Load(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if !c.overviews {
		clone, err := img.ScaledDownClone(c.size)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		if err := clone.Save(c.outputPath); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	overviews, err := img.Overviews(c.size)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	for _, overview := range overviews {
		path := overviewPath(c.outputPath, overview.Size())
		if err := overview.Save(path); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		log.Printf("written %v", path)
	}
	return subcommands.ExitSuccess
}
