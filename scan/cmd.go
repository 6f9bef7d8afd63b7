package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"steganosaur/cli"
	"steganosaur/codec"
	"steganosaur/extract"
	"steganosaur/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Dir     string `arg:"" optional:"" help:"Folder to scan" default:"."`
	Workers int    `help:"Images decoded at once, 0 for one per CPU" default:"0"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	dir, err := filepath.Abs(c.Dir)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(dir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Dir, err)
	}
	c.Dir = dir

	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

type hit struct {
	name, text string
}

func (c *CLICmd) Run(g *cli.Globals) error {
	files, err := os.ReadDir(c.Dir)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Dir, err)
	}

	var (
		mu                   sync.Mutex
		hits                 []hit
		empty, skipped, errs int
	)
	count := func(n *int) {
		mu.Lock()
		*n++
		mu.Unlock()
	}

	pool := parallel.Start(c.Workers)
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		name := file.Name()
		pool.Do(func() {
			path := filepath.Join(c.Dir, name)
			logger := slog.Default().With("file", path)

			text, err := extract.Reveal(path)
			switch {
			case err == nil:
				mu.Lock()
				hits = append(hits, hit{name: name, text: text})
				mu.Unlock()
			case errors.Is(err, codec.ErrTerminatorNotFound):
				logger.Debug("no message")
				count(&empty)
			case errors.Is(err, codec.ErrUnsupportedFormat):
				logger.Debug("skipping unsupported image", "error", err)
				count(&skipped)
			default:
				logger.Debug("skipping unreadable file", "error", err)
				count(&errs)
			}
		})
	}
	pool.Wait()

	slices.SortFunc(hits, func(a, b hit) int { return strings.Compare(a.name, b.name) })
	for _, h := range hits {
		g.Printf("%s: %s\n", h.name, h.text)
	}

	slog.Info("stats", "messages", len(hits), "empty", empty, "unsupported", skipped, "unreadable", errs,
		"total", len(hits)+empty+skipped+errs)

	if len(hits) == 0 {
		return cli.Notify(cli.MsgNotFound, nil)
	}
	return nil
}
