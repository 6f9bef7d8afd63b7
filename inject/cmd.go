package inject

import (
	"errors"
	"fmt"
	"log/slog"

	"steganosaur/carrier"
	"steganosaur/charset"
	"steganosaur/cli"
	"steganosaur/codec"
)

type CLICmd struct {
	Source  string `arg:"" optional:"" help:"Image to hide the message in"`
	Message string `arg:"" optional:"" help:"Message to hide, characters up to U+00FF. Put -- before a message starting with -"`
	Output  string `arg:"" optional:"" help:"Path of the image to write"`
	Format  string `help:"Output format. 'auto' follows the output extension, 'same' keeps the source format" enum:"auto,same,png,bmp,tiff" default:"auto"`
}

func (c *CLICmd) Run(g *cli.Globals) error {
	if err := carrier.CheckSource(c.Source); err != nil {
		if errors.Is(err, carrier.ErrNotExist) {
			return cli.Notify(cli.MsgFileNotExist, err)
		}
		return err
	}
	if c.Message == "" {
		return cli.Notify(cli.MsgNoMessage, nil)
	}
	if c.Output == "" {
		return cli.Notify(cli.MsgNoOutput, nil)
	}

	msg, err := charset.Encode(c.Message)
	if err != nil {
		return cli.Notify(cli.MsgUnrepresentable, err)
	}

	logger := slog.Default().With("file", c.Source)

	img, err := carrier.Load(c.Source)
	if err != nil {
		if errors.Is(err, codec.ErrUnsupportedFormat) {
			return cli.Notify(cli.MsgUnsupported, err)
		}
		return err
	}

	format, err := carrier.OutputFormat(c.Format, img.Format(), c.Output)
	if err != nil {
		return fmt.Errorf("invalid output %q: %w", c.Output, err)
	}

	if err = codec.Inject(img, msg); err != nil {
		var capErr *codec.CapacityError
		if errors.As(err, &capErr) {
			logger.Warn("message does not fit", "bits", capErr.Need, "capacity", capErr.Have)
			return cli.Notify(cli.MsgTooLong, err)
		}
		return err
	}
	logger.Info("message injected", "bytes", len(msg), "format", format, "output", c.Output)

	if err = img.Save(c.Output, format); err != nil {
		return err
	}
	return nil
}
