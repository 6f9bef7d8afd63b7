// Package cover generates random-noise carrier images.
package cover

import (
	"crypto/rand"
	"fmt"
	"image"
	"log/slog"

	"steganosaur/carrier"
	"steganosaur/cli"

	"github.com/alecthomas/kong"
)

const maxSide = 1 << 14

type CLICmd struct {
	Output string `arg:"" help:"Path of the cover image to write"`
	Width  int    `help:"Width in pixels" default:"512"`
	Height int    `help:"Height in pixels" default:"512"`
	Format string `help:"Output format. 'auto' follows the output extension" enum:"auto,png,bmp,tiff" default:"auto"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width < 1 || c.Width > maxSide:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.Height < 1 || c.Height > maxSide:
		return fmt.Errorf("invalid height: %d", c.Height)
	}
	return nil
}

func (c *CLICmd) Run(g *cli.Globals) error {
	format, err := carrier.OutputFormat(c.Format, "", c.Output)
	if err != nil {
		return fmt.Errorf("invalid output %q: %w", c.Output, err)
	}

	img, err := Noise(c.Width, c.Height)
	if err != nil {
		return err
	}

	if err = carrier.WriteImage(img, c.Output, format); err != nil {
		return err
	}
	slog.Info("cover written", "file", c.Output, "width", c.Width, "height", c.Height, "format", format)
	return nil
}

// Noise returns an opaque image of uniformly random RGB pixels.
func Noise(w, h int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if _, err := rand.Read(img.Pix); err != nil {
		return nil, fmt.Errorf("random pixels: %w", err)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img, nil
}
