// Package carrier loads images into a pixel sequence the codec can work on
// and writes the modified pixels back out.
package carrier

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"steganosaur/codec"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// ErrNotExist is returned by CheckSource for a missing source path.
var ErrNotExist = errors.New("source does not exist")

// Carrier is an RGB image addressed as a row-major pixel sequence.
type Carrier struct {
	img    *image.NRGBA
	width  int
	format string
}

var _ codec.Sequence = (*Carrier)(nil)

// CheckSource verifies that path names an existing regular file.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotExist, path)
		}
		return fmt.Errorf("cannot stat source file %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot read non-regular file %q: %s", info.Name(), info.Mode().String())
	}
	return nil
}

// Load opens and decodes the image at path.
func Load(path string) (*Carrier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not load image %q: %w", path, err)
	}
	return c, nil
}

// Decode reads an image from r. Images that are neither 8-bit RGB nor
// paletted are rejected with codec.ErrUnsupportedFormat.
func Decode(r io.Reader) (*Carrier, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return FromImage(img, format)
}

// FromImage wraps img. The pixels are copied, img itself is never written.
func FromImage(img image.Image, format string) (*Carrier, error) {
	if !supported(img.ColorModel()) {
		return nil, fmt.Errorf("%w: %s", codec.ErrUnsupportedFormat, modelName(img.ColorModel()))
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		// Straight copy, a premultiplied round trip would alter translucent pixels.
		for y := range b.Dy() {
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	} else {
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	}

	return &Carrier{img: dst, width: b.Dx(), format: format}, nil
}

func supported(m color.Model) bool {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.YCbCrModel:
		return true
	}
	// Palette entries are expanded to RGB triples.
	_, ok := m.(color.Palette)
	return ok
}

func modelName(m color.Model) string {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model:
		return "16-bit RGB"
	case color.GrayModel, color.Gray16Model:
		return "grayscale"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "alpha"
	}
	return fmt.Sprintf("%T", m)
}

// Format is the name of the decoder that produced the carrier.
func (c *Carrier) Format() string { return c.format }

// Image exposes the carrier's pixels.
func (c *Carrier) Image() image.Image { return c.img }

func (c *Carrier) Len() int {
	return c.img.Rect.Dx() * c.img.Rect.Dy()
}

func (c *Carrier) offset(i int) int {
	return (i/c.width)*c.img.Stride + (i%c.width)*4
}

func (c *Carrier) Pixel(i int) codec.Pixel {
	s := c.img.Pix[c.offset(i):]
	return codec.Pixel{R: s[0], G: s[1], B: s[2]}
}

// SetPixel stores p at index i and makes the pixel fully opaque.
func (c *Carrier) SetPixel(i int, p codec.Pixel) {
	s := c.img.Pix[c.offset(i):]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, 0xFF
}
