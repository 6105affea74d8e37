package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&convertCmd{}, "tilesets")
	subcommands.Register(&publishCmd{}, "tilesets")
	subcommands.Register(&renderCmd{}, "geoimages")
	subcommands.Register(&downsampleCmd{}, "geoimages")
	subcommands.Register(&infoCmd{}, "geoimages")

	verbose := flag.Bool("v", false, "Log library progress")
	flag.Parse()
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}
