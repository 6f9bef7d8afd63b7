package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"steganosaur/cli"
	"steganosaur/cover"
	"steganosaur/extract"
	"steganosaur/inject"
	"steganosaur/scan"

	"github.com/alecthomas/kong"
)

type CLI struct {
	cli.Globals

	Inject  inject.CLICmd  `cmd:"" help:"Hide a message in an image"`
	Extract extract.CLICmd `cmd:"" help:"Recover a message hidden in an image"`
	Scan    scan.CLICmd    `cmd:"" help:"Recover the messages hidden in every image of a folder"`
	Cover   cover.CLICmd   `cmd:"" help:"Generate a random-noise carrier image"`
}

var commands = []string{"inject", "extract", "scan", "cover"}

// valueFlags are the global flags that consume the following argument.
var valueFlags = []string{"--log-level"}

// commandName returns the first argument that is neither a flag nor a flag
// value. Nothing after "--" is considered.
func commandName(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ""
		case slices.Contains(valueFlags, arg):
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			return arg
		}
	}
	return ""
}

func help() {
	name := filepath.Base(os.Args[0])
	fmt.Printf("Extract: %s extract [source]\n", name)
	fmt.Printf("Inject: %s inject [source] [message] [target]\n", name)
	fmt.Printf("        %s inject [source] -- [-message] [target]  (message starting with '-')\n", name)
	fmt.Printf("Scan: %s scan [folder]\n", name)
	fmt.Printf("Cover: %s cover [target] [--width N] [--height N]\n", name)
}

func main() {
	if !slices.Contains(commands, commandName(os.Args[1:])) {
		help()
		return
	}

	var c CLI
	c.Stdout = os.Stdout
	parser, err := kong.New(&c,
		kong.Name(filepath.Base(os.Args[0])),
		kong.Description("Hide text in the pixels of an RGB image."),
		kong.UsageOnError(),
		kong.Configuration(yamlLoader, configPaths...),
	)
	if err != nil {
		slog.Error("invalid command line definition", "error", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()})))

	if err = kctx.Run(&c.Globals); err != nil {
		var n *cli.Notice
		if errors.As(err, &n) {
			fmt.Println(n.Text)
			if n.Err != nil {
				slog.Debug("cause", "error", n.Err)
			}
		} else {
			slog.Error("command failed", "command", kctx.Command(), "error", err)
		}
		os.Exit(1)
	}
}
