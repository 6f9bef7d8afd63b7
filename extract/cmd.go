package extract

import (
	"errors"
	"fmt"
	"log/slog"

	"steganosaur/carrier"
	"steganosaur/charset"
	"steganosaur/cli"
	"steganosaur/codec"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

type CLICmd struct {
	Source string `arg:"" optional:"" help:"Image to search for a hidden message"`
	QR     string `help:"Also write the message as a QR code PNG to this path" placeholder:"PATH"`
}

func (c *CLICmd) Run(g *cli.Globals) error {
	if err := carrier.CheckSource(c.Source); err != nil {
		if errors.Is(err, carrier.ErrNotExist) {
			return cli.Notify(cli.MsgFileNotExist, err)
		}
		return err
	}

	text, err := Reveal(c.Source)
	switch {
	case errors.Is(err, codec.ErrUnsupportedFormat):
		return cli.Notify(cli.MsgUnsupported, err)
	case errors.Is(err, codec.ErrTerminatorNotFound):
		return cli.Notify(cli.MsgNotFound, err)
	case err != nil:
		return err
	}

	g.Printf(cli.ExtractedMessageFmt, text)

	if c.QR != "" {
		if err = qrcode.WriteFile(text, qrcode.Medium, qrSize, c.QR); err != nil {
			return fmt.Errorf("could not write QR code %q: %w", c.QR, err)
		}
		slog.Info("QR code written", "file", c.QR)
	}
	return nil
}

// Reveal loads the image at path and returns the message hidden in it.
func Reveal(path string) (string, error) {
	img, err := carrier.Load(path)
	if err != nil {
		return "", err
	}

	msg, err := codec.Extract(img)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}
	slog.Debug("message extracted", "file", path, "format", img.Format(), "bytes", len(msg))
	return charset.Decode(msg), nil
}
