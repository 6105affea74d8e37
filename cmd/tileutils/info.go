package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/eak1mov/go-geoimage/geoimage"
	"github.com/google/subcommands"
)

type infoCmd struct{}

func (c *infoCmd) Name() string             { return "info" }
func (c *infoCmd) Synopsis() string         { return "print parameters of saved geoimages" }
func (c *infoCmd) Usage() string            { return "tileutils info <path>...\n" }
func (c *infoCmd) SetFlags(_ *flag.FlagSet) {}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	for _, path := range f.Args() {
		img, err := geoimage.Load(path)
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}

		unset, lo, hi := 0, math.Inf(1), math.Inf(-1)
		for _, v := range img.Data() {
			if v == geoimage.Unset {
				unset++
				continue
			}
			lo, hi = min(lo, v), max(hi, v)
		}

		bound := img.Bound()
		fmt.Printf("%s: tile %v size %d\n", path, img.TileID(), img.Size())
		fmt.Printf("  bounds: %.7f,%.7f,%.7f,%.7f\n", bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat())
		fmt.Printf("  pixels: %d set, %d unset\n", img.Size()*img.Size()-unset, unset)
		if unset < img.Size()*img.Size() {
			fmt.Printf("  values: min %g max %g\n", lo, hi)
		}
	}
	return subcommands.ExitSuccess
}
