package carrier

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the output formats that keep every pixel intact.
var Formats = []string{"png", "bmp", "tiff"}

// OutputFormat picks the encoder for dest. An explicit format wins, "same"
// keeps the source format, otherwise the extension decides.
func OutputFormat(format, srcFormat, dest string) (string, error) {
	switch format {
	case "", "auto":
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(dest)), ".")
		if format == "tif" {
			format = "tiff"
		}
	case "same":
		format = srcFormat
	}

	switch format {
	case "png", "bmp", "tiff":
		return format, nil
	case "jpeg", "jpg", "gif", "webp":
		return "", fmt.Errorf("output format %s would destroy the hidden message", format)
	case "":
		return "png", nil
	}
	return "", fmt.Errorf("unsupported output format: %s", format)
}

// Encode writes img to w in the given lossless format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

// Save encodes the carrier to dest. The data goes to a temporary file in
// the destination folder first and is renamed into place once complete.
func (c *Carrier) Save(dest, format string) error {
	return WriteImage(c.img, dest, format)
}

// WriteImage encodes img to dest through a temporary file.
func WriteImage(img image.Image, dest, format string) (err error) {
	destDir, destName := filepath.Split(dest)
	if destDir == "" {
		destDir = "."
	}

	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination for %q: %w", dest, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination for %q: %w", dest, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, format); err != nil {
		return fmt.Errorf("could not write %q: %w", dest, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
